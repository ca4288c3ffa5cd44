package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// CartRepository implements cart.Repository on the document store
type CartRepository struct {
	store kvstore.Store
}

// NewCartRepository creates a document-backed cart repository
func NewCartRepository(store kvstore.Store) *CartRepository {
	return &CartRepository{store: store}
}

// List returns every cart line. A missing or unreadable document reads
// as an empty cart.
func (r *CartRepository) List(ctx context.Context) []cart.Item {
	var items []cart.Item
	if !r.store.Get(ctx, KeyCart, &items) || items == nil {
		return []cart.Item{}
	}
	return items
}

// Save replaces the cart document
func (r *CartRepository) Save(ctx context.Context, items []cart.Item) error {
	if items == nil {
		items = []cart.Item{}
	}
	return r.store.Set(ctx, KeyCart, items)
}

// Clear removes the cart document
func (r *CartRepository) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, KeyCart)
}

// Ensure CartRepository implements cart.Repository
var _ cart.Repository = (*CartRepository)(nil)
