package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// SessionRepository implements identity.SessionRepository over the three
// mirrored session keys
type SessionRepository struct {
	store kvstore.Store
}

// NewSessionRepository creates a document-backed session repository
func NewSessionRepository(store kvstore.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Current reads the session from its three keys. The isLogin flag is
// authoritative: without it (or without a readable loginInfo) there is
// no session, whatever the other keys hold.
func (r *SessionRepository) Current(ctx context.Context) (*identity.Session, bool) {
	var isLogin bool
	if !r.store.Get(ctx, KeyIsLogin, &isLogin) || !isLogin {
		return nil, false
	}

	var info identity.LoginInfo
	if !r.store.Get(ctx, KeyLoginInfo, &info) {
		return nil, false
	}

	var profile identity.Profile
	r.store.Get(ctx, KeyLoginUser, &profile)

	return &identity.Session{Profile: profile, Info: info, IsLogin: true}, true
}

// Save writes all three session keys together
func (r *SessionRepository) Save(ctx context.Context, s identity.Session) error {
	if err := r.store.Set(ctx, KeyLoginUser, s.Profile); err != nil {
		return err
	}
	if err := r.store.Set(ctx, KeyLoginInfo, s.Info); err != nil {
		return err
	}
	return r.store.Set(ctx, KeyIsLogin, s.IsLogin)
}

// Clear removes every session key, including the legacy auth record
func (r *SessionRepository) Clear(ctx context.Context) error {
	for _, key := range []string{KeyLoginUser, KeyLoginInfo, KeyIsLogin, KeyAuth} {
		if err := r.store.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Ensure SessionRepository implements identity.SessionRepository
var _ identity.SessionRepository = (*SessionRepository)(nil)
