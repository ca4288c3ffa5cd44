package identity

import "github.com/storefront/backend/internal/domain/shared"

// Event types published by the identity context
const (
	EventTypeLoggedIn  = "session.logged_in"
	EventTypeLoggedOut = "session.logged_out"
)

// LoggedInEvent is published after a successful login of any type
type LoggedInEvent struct {
	shared.BaseDomainEvent
	LoginType LoginType `json:"login_type"`
}

// NewLoggedInEvent creates a login notification
func NewLoggedInEvent(userID string, loginType LoginType) *LoggedInEvent {
	return &LoggedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoggedIn, "session", userID),
		LoginType:       loginType,
	}
}

// LoggedOutEvent is published after logout, which always succeeds
// locally regardless of upstream responses
type LoggedOutEvent struct {
	shared.BaseDomainEvent
}

// NewLoggedOutEvent creates a logout notification
func NewLoggedOutEvent(userID string) *LoggedOutEvent {
	return &LoggedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoggedOut, "session", userID),
	}
}
