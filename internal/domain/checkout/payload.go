package checkout

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Payload is the in-flight checkout state a client carries between the
// review, method-selection, and confirmation steps. A shadow copy is
// persisted so a reload mid-flow can resume; the explicit payload of a
// request wins over the shadow copy whenever it is present and
// non-empty.
type Payload struct {
	Items    []RawItem           `json:"items"`
	Subtotal *valueobject.Money  `json:"subtotal,omitempty"`
	Discount *valueobject.Money  `json:"discount,omitempty"`
	Shipping *valueobject.Money  `json:"shipping,omitempty"`
	Total    *valueobject.Money  `json:"total,omitempty"`
	Coupon   *AppliedCoupon      `json:"coupon,omitempty"`
	Method   string              `json:"method,omitempty"`
}

// IsEmpty reports whether the payload carries no items
func (p *Payload) IsEmpty() bool {
	return p == nil || len(p.Items) == 0
}

// StageRepository persists the checkout flow's shadow state:
//   - lastCheckout: the reviewed quote, written when leaving review
//   - payPayload:   quote + selected method, written at method selection
//   - pendingOrder: a single buy-now line, bypassing the cart
//   - cartCheckout: the lines selected on the cart page
//
// Loads return false when nothing (readable) is stored.
type StageRepository interface {
	SaveLastCheckout(ctx context.Context, p Payload) error
	LoadLastCheckout(ctx context.Context) (*Payload, bool)
	SavePayPayload(ctx context.Context, p Payload) error
	LoadPayPayload(ctx context.Context) (*Payload, bool)
	SavePendingOrder(ctx context.Context, item RawItem) error
	LoadPendingOrder(ctx context.Context) (*RawItem, bool)
	SaveCartCheckout(ctx context.Context, items []RawItem) error
	LoadCartCheckout(ctx context.Context) ([]RawItem, bool)
	// ClearTemp removes payPayload, pendingOrder, and cartCheckout
	// after a completed confirmation
	ClearTemp(ctx context.Context) error
}
