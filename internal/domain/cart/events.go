package cart

import "github.com/storefront/backend/internal/domain/shared"

// Event types published by the cart context
const (
	EventTypeChanged = "cart.changed"
)

// ChangedEvent is published after every cart mutation so that mounted
// views (header badge, open cart pages) can refresh without re-reading
// on a timer.
type ChangedEvent struct {
	shared.BaseDomainEvent
	ItemCount int `json:"item_count"`
	TotalQty  int `json:"total_qty"`
}

// NewChangedEvent creates a cart change notification
func NewChangedEvent(items []Item) *ChangedEvent {
	totalQty := 0
	for _, it := range items {
		totalQty += it.Qty
	}
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChanged, "cart", "cart"),
		ItemCount:       len(items),
		TotalQty:        totalQty,
	}
}
