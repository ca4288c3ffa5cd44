package wishlist

import "github.com/storefront/backend/internal/domain/shared"

// Event types published by the wishlist context
const (
	EventTypeChanged = "wishlist.changed"
)

// ChangedEvent is published after every wishlist mutation
type ChangedEvent struct {
	shared.BaseDomainEvent
	ItemCount int `json:"item_count"`
}

// NewChangedEvent creates a wishlist change notification
func NewChangedEvent(items []Item) *ChangedEvent {
	return &ChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChanged, "wishlist", "wishlist"),
		ItemCount:       len(items),
	}
}
