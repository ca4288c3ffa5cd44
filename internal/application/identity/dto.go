package identity

import (
	"github.com/storefront/backend/internal/domain/identity"
)

// SignupRequest registers a local account. PasswordConfirm is optional;
// when present it must match the password.
type SignupRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"passwordConfirm"`
	Name            string `json:"name" binding:"required"`
}

// LoginRequest authenticates a local account. The storefront logs in by
// email, except for the admin account which uses its literal ID.
type LoginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SNSLoginRequest records an SNS-authenticated login. Providers deliver
// the user identifier under userId or id depending on the provider.
type SNSLoginRequest struct {
	Provider string `json:"provider" binding:"required"`
	UserID   string `json:"userId"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// SessionResponse mirrors the three stored session records
type SessionResponse struct {
	LoginUser identity.Profile   `json:"loginUser"`
	LoginInfo identity.LoginInfo `json:"loginInfo"`
	IsLogin   bool               `json:"isLogin"`
}

// CheckEmailResponse reports whether an email is free to register
type CheckEmailResponse struct {
	Available bool `json:"available"`
}

func toSessionResponse(s identity.Session) SessionResponse {
	return SessionResponse{LoginUser: s.Profile, LoginInfo: s.Info, IsLogin: s.IsLogin}
}
