package event

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/wishlist"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
	"go.uber.org/zap"
)

// BadgeDocumentKey is the document the badge projection maintains
const BadgeDocumentKey = "badges"

// BadgeCounts is the header badge state derived from cart and wishlist
// change events. Clients read this one document instead of loading both
// collections just to render two numbers.
type BadgeCounts struct {
	CartItems    int `json:"cartItems"`
	CartQty      int `json:"cartQty"`
	WishlistSize int `json:"wishlistSize"`
}

// BadgeProjection keeps BadgeCounts current by listening for cart and
// wishlist changes
type BadgeProjection struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewBadgeProjection creates the projection handler
func NewBadgeProjection(store kvstore.Store, logger *zap.Logger) *BadgeProjection {
	return &BadgeProjection{store: store, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (p *BadgeProjection) EventTypes() []string {
	return []string{cart.EventTypeChanged, wishlist.EventTypeChanged}
}

// Handle applies a change event to the badge document
func (p *BadgeProjection) Handle(ctx context.Context, event shared.DomainEvent) error {
	var counts BadgeCounts
	p.store.Get(ctx, BadgeDocumentKey, &counts)

	switch e := event.(type) {
	case *cart.ChangedEvent:
		counts.CartItems = e.ItemCount
		counts.CartQty = e.TotalQty
	case *wishlist.ChangedEvent:
		counts.WishlistSize = e.ItemCount
	default:
		return nil
	}

	if err := p.store.Set(ctx, BadgeDocumentKey, counts); err != nil {
		p.logger.Warn("failed to update badge counts", zap.Error(err))
		return err
	}
	return nil
}

// Ensure BadgeProjection implements EventHandler
var _ shared.EventHandler = (*BadgeProjection)(nil)
