package identity

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the authorization level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// LoginType records which flow authenticated the user
type LoginType string

const (
	LoginTypeLocal LoginType = "local"
	LoginTypeNaver LoginType = "naver"
	LoginTypeKakao LoginType = "kakao"
)

// AdminUserID is the single account the admin panel accepts. The check
// is a client-trust string comparison; there is no server-verified claim
// behind it (a documented non-goal of this system).
const AdminUserID = "admin"

// User is a registered member. Local accounts use the email as their ID;
// SNS accounts carry the provider-issued ID.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	LoginType    LoginType `json:"loginType,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewLocalUser creates a password-based account
func NewLocalUser(email, name, password string, now time.Time) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if password == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           email,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		LoginType:    LoginTypeLocal,
		CreatedAt:    now,
	}, nil
}

// NewSeedUser creates a password-based account under a fixed ID rather
// than an email. The demo admin account is seeded through this.
func NewSeedUser(id, name, password string, now time.Time) (*User, error) {
	if id == "" {
		return nil, shared.NewDomainError("INVALID_ID", "User ID cannot be empty")
	}
	if password == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           id,
		Name:         name,
		PasswordHash: string(hash),
		LoginType:    LoginTypeLocal,
		CreatedAt:    now,
	}, nil
}

// NewSNSUser creates an account for an SNS-authenticated member. SNS
// accounts have no local password.
func NewSNSUser(id, name, email string, loginType LoginType, now time.Time) (*User, error) {
	if id == "" {
		return nil, shared.NewDomainError("INVALID_ID", "User ID cannot be empty")
	}
	return &User{
		ID:        id,
		Email:     email,
		Name:      name,
		LoginType: loginType,
		CreatedAt: now,
	}, nil
}

// CheckPassword verifies a password against the stored hash
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Role derives the authorization level from the user ID
func (u *User) Role() Role {
	if u.ID == AdminUserID {
		return RoleAdmin
	}
	return RoleUser
}
