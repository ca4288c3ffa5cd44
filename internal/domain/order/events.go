package order

import "github.com/storefront/backend/internal/domain/shared"

// Event types published by the order context
const (
	EventTypeCreated       = "order.created"
	EventTypeStatusChanged = "order.status_changed"
	EventTypeDeleted       = "order.deleted"
)

// CreatedEvent is published once per order written at checkout or bulk
// inquiry time
type CreatedEvent struct {
	shared.BaseDomainEvent
	OrderType Type   `json:"order_type"`
	BuyerID   string `json:"buyer_id"`
}

// NewCreatedEvent creates an order creation notification
func NewCreatedEvent(o *Order) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreated, "order", o.ID),
		OrderType:       o.Type,
		BuyerID:         o.Buyer.ID,
	}
}

// StatusChangedEvent is published when an admin moves an order through
// the fulfillment flow
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewStatusChangedEvent creates a status change notification
func NewStatusChangedEvent(orderID string, from, to Status) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStatusChanged, "order", orderID),
		From:            from,
		To:              to,
	}
}

// DeletedEvent is published when an admin hard-removes an order
type DeletedEvent struct {
	shared.BaseDomainEvent
}

// NewDeletedEvent creates an order deletion notification
func NewDeletedEvent(orderID string) *DeletedEvent {
	return &DeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeleted, "order", orderID),
	}
}
