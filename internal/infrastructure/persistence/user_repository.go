package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// UserRepository implements identity.UserRepository on the document store
type UserRepository struct {
	store kvstore.Store
}

// NewUserRepository creates a document-backed user repository
func NewUserRepository(store kvstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns every registered member, empty when nothing readable is
// stored
func (r *UserRepository) List(ctx context.Context) []identity.User {
	var users []identity.User
	if !r.store.Get(ctx, KeyUsers, &users) || users == nil {
		return []identity.User{}
	}
	return users
}

// FindByID returns the user with the given canonical ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*identity.User, bool) {
	for _, u := range r.List(ctx) {
		if u.ID == id {
			return &u, true
		}
	}
	return nil, false
}

// Save replaces the members document
func (r *UserRepository) Save(ctx context.Context, users []identity.User) error {
	if users == nil {
		users = []identity.User{}
	}
	return r.store.Set(ctx, KeyUsers, users)
}

// Ensure UserRepository implements identity.UserRepository
var _ identity.UserRepository = (*UserRepository)(nil)
