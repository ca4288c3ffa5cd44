package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
)

// OrderRepository implements order.Repository on the document store
type OrderRepository struct {
	store kvstore.Store
}

// NewOrderRepository creates a document-backed order repository
func NewOrderRepository(store kvstore.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// List returns the order ledger, newest first, empty when nothing
// readable is stored
func (r *OrderRepository) List(ctx context.Context) []order.Order {
	var orders []order.Order
	if !r.store.Get(ctx, KeyOrders, &orders) || orders == nil {
		return []order.Order{}
	}
	return orders
}

// Save replaces the order ledger document
func (r *OrderRepository) Save(ctx context.Context, orders []order.Order) error {
	if orders == nil {
		orders = []order.Order{}
	}
	return r.store.Set(ctx, KeyOrders, orders)
}

// Ensure OrderRepository implements order.Repository
var _ order.Repository = (*OrderRepository)(nil)
