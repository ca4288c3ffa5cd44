package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// CheckoutStageRepository implements checkout.StageRepository on the
// document store
type CheckoutStageRepository struct {
	store kvstore.Store
}

// NewCheckoutStageRepository creates a document-backed checkout stage
// repository
func NewCheckoutStageRepository(store kvstore.Store) *CheckoutStageRepository {
	return &CheckoutStageRepository{store: store}
}

// SaveLastCheckout persists the reviewed quote
func (r *CheckoutStageRepository) SaveLastCheckout(ctx context.Context, p checkout.Payload) error {
	return r.store.Set(ctx, KeyLastCheckout, p)
}

// LoadLastCheckout returns the reviewed quote, or false
func (r *CheckoutStageRepository) LoadLastCheckout(ctx context.Context) (*checkout.Payload, bool) {
	var p checkout.Payload
	if !r.store.Get(ctx, KeyLastCheckout, &p) {
		return nil, false
	}
	return &p, true
}

// SavePayPayload persists the quote with its selected payment method
func (r *CheckoutStageRepository) SavePayPayload(ctx context.Context, p checkout.Payload) error {
	return r.store.Set(ctx, KeyPayPayload, p)
}

// LoadPayPayload returns the quote with its selected method, or false
func (r *CheckoutStageRepository) LoadPayPayload(ctx context.Context) (*checkout.Payload, bool) {
	var p checkout.Payload
	if !r.store.Get(ctx, KeyPayPayload, &p) {
		return nil, false
	}
	return &p, true
}

// SavePendingOrder persists a single buy-now line
func (r *CheckoutStageRepository) SavePendingOrder(ctx context.Context, item checkout.RawItem) error {
	return r.store.Set(ctx, KeyPendingOrder, item)
}

// LoadPendingOrder returns the buy-now line, or false
func (r *CheckoutStageRepository) LoadPendingOrder(ctx context.Context) (*checkout.RawItem, bool) {
	var item checkout.RawItem
	if !r.store.Get(ctx, KeyPendingOrder, &item) {
		return nil, false
	}
	return &item, true
}

// SaveCartCheckout persists the lines selected on the cart page
func (r *CheckoutStageRepository) SaveCartCheckout(ctx context.Context, items []checkout.RawItem) error {
	return r.store.Set(ctx, KeyCartCheckout, items)
}

// LoadCartCheckout returns the selected cart lines, or false
func (r *CheckoutStageRepository) LoadCartCheckout(ctx context.Context) ([]checkout.RawItem, bool) {
	var items []checkout.RawItem
	if !r.store.Get(ctx, KeyCartCheckout, &items) || len(items) == 0 {
		return nil, false
	}
	return items, true
}

// ClearTemp removes the transient checkout keys after confirmation
func (r *CheckoutStageRepository) ClearTemp(ctx context.Context) error {
	for _, key := range []string{KeyPayPayload, KeyPendingOrder, KeyCartCheckout} {
		if err := r.store.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Ensure CheckoutStageRepository implements checkout.StageRepository
var _ checkout.StageRepository = (*CheckoutStageRepository)(nil)
