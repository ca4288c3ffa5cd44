package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Session context keys
const (
	SessionClaimsKey = "session_claims"
	SessionUserIDKey = "session_user_id"
	AuthHeaderKey    = "Authorization"
	BearerPrefix     = "Bearer "
)

// Session extracts and validates the bearer token when one is present.
// Requests without a token pass through anonymously; the storefront
// serves guests everywhere except the account and admin areas.
func Session(tokens *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" || !strings.HasPrefix(header, BearerPrefix) {
			c.Next()
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if err == auth.ErrExpiredToken {
				code = dto.ErrCodeTokenExpired
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(code, "Invalid session token"))
			return
		}

		c.Set(SessionClaimsKey, claims)
		c.Set(SessionUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireLogin rejects requests that carry no validated session
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSessionUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Login required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin guards the admin panel. The check is the storefront's
// historical one: the session user ID must be the literal admin account.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetSessionUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Login required"))
			return
		}
		if userID != identity.AdminUserID {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin account required"))
			return
		}
		c.Next()
	}
}

// GetSessionClaims returns the validated claims of the request, if any
func GetSessionClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(SessionClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetSessionUserID returns the session user ID, or an empty string
func GetSessionUserID(c *gin.Context) string {
	return c.GetString(SessionUserIDKey)
}
