package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles signup, login, and session routes
type AuthHandler struct {
	BaseHandler
	identity *identityapp.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identity *identityapp.Service) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/sns", h.LoginSNS)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.Session)
		auth.GET("/check-email", h.CheckEmail)
	}
}

// Signup registers a local account and opens a session
func (h *AuthHandler) Signup(c *gin.Context) {
	var req identityapp.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid signup payload: "+err.Error())
		return
	}
	resp, err := h.identity.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login authenticates a local account
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid login payload: "+err.Error())
		return
	}
	resp, err := h.identity.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LoginSNS records an SNS-authenticated login
func (h *AuthHandler) LoginSNS(c *gin.Context) {
	var req identityapp.SNSLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid SNS login payload: "+err.Error())
		return
	}
	resp, err := h.identity.LoginSNS(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout closes the session
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.identity.Logout(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Session returns the active session, if any
func (h *AuthHandler) Session(c *gin.Context) {
	resp, ok := h.identity.Current(c.Request.Context())
	if !ok {
		h.Success(c, gin.H{"isLogin": false})
		return
	}
	h.Success(c, resp)
}

// CheckEmail reports whether an email is free to register
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		h.BadRequest(c, "email query parameter is required")
		return
	}
	h.Success(c, h.identity.CheckEmail(c.Request.Context(), email))
}
