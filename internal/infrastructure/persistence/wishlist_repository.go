package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/wishlist"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// WishlistRepository implements wishlist.Repository on the document store
type WishlistRepository struct {
	store kvstore.Store
}

// NewWishlistRepository creates a document-backed wishlist repository
func NewWishlistRepository(store kvstore.Store) *WishlistRepository {
	return &WishlistRepository{store: store}
}

// List returns every wishlist entry, empty when nothing readable is
// stored
func (r *WishlistRepository) List(ctx context.Context) []wishlist.Item {
	var items []wishlist.Item
	if !r.store.Get(ctx, KeyWishlist, &items) || items == nil {
		return []wishlist.Item{}
	}
	return items
}

// Save replaces the wishlist document
func (r *WishlistRepository) Save(ctx context.Context, items []wishlist.Item) error {
	if items == nil {
		items = []wishlist.Item{}
	}
	return r.store.Set(ctx, KeyWishlist, items)
}

// Clear removes the wishlist document
func (r *WishlistRepository) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, KeyWishlist)
}

// Ensure WishlistRepository implements wishlist.Repository
var _ wishlist.Repository = (*WishlistRepository)(nil)
