package coupon

import "github.com/storefront/backend/internal/domain/shared"

// Event types published by the coupon context
const (
	EventTypeIssued = "coupon.issued"
	EventTypeUsed   = "coupon.used"
)

// IssuedEvent is published when a coupon is granted
type IssuedEvent struct {
	shared.BaseDomainEvent
	CouponName string `json:"coupon_name"`
}

// NewIssuedEvent creates a coupon issue notification
func NewIssuedEvent(c Coupon) *IssuedEvent {
	return &IssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIssued, "coupon", c.ID),
		CouponName:      c.Name,
	}
}

// UsedEvent is published when a coupon is consumed at checkout
type UsedEvent struct {
	shared.BaseDomainEvent
}

// NewUsedEvent creates a coupon usage notification
func NewUsedEvent(couponID string) *UsedEvent {
	return &UsedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUsed, "coupon", couponID),
	}
}
