package identity

import "context"

// UserRepository persists registered members as a single document
type UserRepository interface {
	List(ctx context.Context) []User
	// FindByID returns the user with the given canonical ID, or false
	FindByID(ctx context.Context, id string) (*User, bool)
	Save(ctx context.Context, users []User) error
}

// SessionRepository owns the three mirrored session keys. Save writes
// loginUser, loginInfo, and isLogin together; Clear removes them all.
type SessionRepository interface {
	// Current returns the active session, or false when nobody is
	// logged in or the stored records are unreadable
	Current(ctx context.Context) (*Session, bool)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
