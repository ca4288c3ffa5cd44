package checkout

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Shipping policy: free at or above the threshold, flat fee below it
var (
	FreeShippingThreshold = valueobject.KRW(50000)
	ShippingFee           = valueobject.KRW(3000)
)

// Subtotal sums price * qty over the lines
func Subtotal(items []LineItem) valueobject.Money {
	sum := valueobject.ZeroKRW()
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ShippingFor returns the shipping charge for a subtotal
func ShippingFor(subtotal valueobject.Money) valueobject.Money {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return valueobject.ZeroKRW()
	}
	return ShippingFee
}

// AppliedCoupon is a coupon together with the discount it yielded on
// the quoted subtotal. The numeric discount shadows the coupon's display
// label of the same name, which is what the storefront has always
// written into its pay payloads.
type AppliedCoupon struct {
	coupon.Coupon
	Discount valueobject.Money `json:"discount"`
}

// Quote is the priced review of a checkout selection:
// subtotal, coupon discount, shipping, and the resulting total.
type Quote struct {
	Items    []LineItem        `json:"items"`
	Subtotal valueobject.Money `json:"subtotal"`
	Discount valueobject.Money `json:"discount"`
	Shipping valueobject.Money `json:"shipping"`
	Total    valueobject.Money `json:"total"`
	Coupon   *AppliedCoupon    `json:"coupon,omitempty"`
	Method   string            `json:"method,omitempty"`
}

// NewQuote prices a selection. The discount is clamped so the total can
// never go negative:
//
//	shipping = 0 if subtotal >= 50,000 else 3,000
//	effective = min(subtotal, max(0, coupon discount))
//	total     = max(0, subtotal - effective + shipping)
func NewQuote(items []LineItem, c *coupon.Coupon, now time.Time) Quote {
	subtotal := Subtotal(items)
	discount := coupon.DiscountFor(subtotal, c, now)
	shipping := ShippingFor(subtotal)
	total := subtotal.Sub(discount).Add(shipping).FloorZero()

	q := Quote{
		Items:    items,
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    total,
	}
	if c != nil {
		q.Coupon = &AppliedCoupon{Coupon: *c, Discount: discount}
	}
	return q
}

// AllocateDiscount distributes an effective discount across lines
// proportionally to each line's share of the subtotal:
//
//	discount_i = round(line_i / subtotal * effective)
//
// then clamps each share to its line total. The rounding happens per
// line with no remainder redistribution; this matches the amounts
// already written into the order ledger and must not be "fixed".
func AllocateDiscount(items []LineItem, effective valueobject.Money) []valueobject.Money {
	parts := make([]decimal.Decimal, len(items))
	sum := decimal.Zero
	for i, it := range items {
		parts[i] = it.LineTotal().Amount()
		sum = sum.Add(parts[i])
	}
	if sum.IsZero() {
		sum = decimal.NewFromInt(1)
	}

	shares := make([]valueobject.Money, len(items))
	for i, p := range parts {
		raw := p.Div(sum).Mul(effective.Amount()).Round(0)
		share := valueobject.KRWFromDecimal(raw).FloorZero()
		shares[i] = valueobject.MinMoney(share, valueobject.KRWFromDecimal(parts[i]))
	}
	return shares
}

// EffectiveDiscount clamps a raw discount into [0, subtotal]
func EffectiveDiscount(subtotal, raw valueobject.Money) valueobject.Money {
	return valueobject.MinMoney(subtotal, raw.FloorZero())
}
