package coupon

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Coupon types. Anything that is not a percent variant is treated as a
// fixed-amount coupon.
const (
	TypeFixed   = "fixed"
	TypePercent = "percent"
)

// WelcomeCouponID is the well-known ID of the signup coupon. Granting is
// idempotent: a ledger that already holds this ID never receives another.
const WelcomeCouponID = "welcome-10000"

// Coupon is one entry in the coupon ledger. Coupons are never deleted;
// used ones are retained as history with a usedAt stamp.
//
// The ledger accumulated entries from several generations of the
// storefront, so most fields are optional and amounts tolerate formatted
// strings ("₩10,000") as well as numbers.
type Coupon struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Amount      valueobject.Money   `json:"amount"`
	Value       *valueobject.Money  `json:"value,omitempty"`
	Discount    string              `json:"discount,omitempty"`
	Type        string              `json:"type,omitempty"`
	Rate        *valueobject.Scalar `json:"rate,omitempty"`
	Max         *valueobject.Money  `json:"max,omitempty"`
	MinPurchase *valueobject.Money  `json:"min,omitempty"`
	ValidUntil  string              `json:"validUntil,omitempty"`
	ExpiresAt   string              `json:"expiresAt,omitempty"`
	Used        bool                `json:"used"`
	UsedAt      string              `json:"usedAt,omitempty"`
	CreatedAt   string              `json:"createdAt,omitempty"`
}

// NewWelcomeCoupon creates the fixed 10,000 won signup coupon
func NewWelcomeCoupon(now time.Time) Coupon {
	return Coupon{
		ID:        WelcomeCouponID,
		Name:      "신규가입 1만원 할인 쿠폰",
		Amount:    valueobject.KRW(10000),
		Type:      TypeFixed,
		Discount:  "₩10,000",
		Used:      false,
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
}

// IsPercent reports whether the coupon discounts by rate rather than by
// a fixed amount. Older ledger entries spell the type several ways.
func (c *Coupon) IsPercent() bool {
	switch strings.TrimSpace(strings.ToLower(c.Type)) {
	case "percent", "percentage", "rate":
		return true
	}
	return false
}

// IsExpired reports whether the coupon's expiry has passed. Entries
// carry the expiry under validUntil or expiresAt depending on their
// generation; an unparseable date never expires.
func (c *Coupon) IsExpired(now time.Time) bool {
	raw := c.ValidUntil
	if raw == "" {
		raw = c.ExpiresAt
	}
	if raw == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return false
		}
	}
	return t.Before(now)
}

// IsUsable reports whether the coupon can still be applied
func (c *Coupon) IsUsable(now time.Time) bool {
	return !c.Used && !c.IsExpired(now)
}

// MarkUsed flips the coupon to used and stamps usedAt
func (c *Coupon) MarkUsed(now time.Time) error {
	if c.Used {
		return shared.ErrCouponUsed
	}
	c.Used = true
	c.UsedAt = now.UTC().Format(time.RFC3339)
	return nil
}

// fixedAmount resolves the fixed discount amount: amount, else value,
// else whatever number is embedded in the coupon name.
func (c *Coupon) fixedAmount() valueobject.Money {
	if !c.Amount.IsZero() {
		return c.Amount
	}
	if c.Value != nil && !c.Value.IsZero() {
		return *c.Value
	}
	return valueobject.ParseKRW(c.Name)
}

// cap resolves the upper bound for percent discounts: max, else amount
func (c *Coupon) cap() valueobject.Money {
	if c.Max != nil && !c.Max.IsZero() {
		return *c.Max
	}
	return c.Amount
}

// DiscountFor computes the discount the coupon yields on the given
// subtotal at the given time. It returns zero for nil, used, expired, or
// below-minimum coupons, and the result is always within [0, subtotal] -
// a coupon can never push a total negative.
func DiscountFor(subtotal valueobject.Money, c *Coupon, now time.Time) valueobject.Money {
	if c == nil || c.Used {
		return valueobject.ZeroKRW()
	}
	if c.IsExpired(now) {
		return valueobject.ZeroKRW()
	}
	if c.MinPurchase != nil && subtotal.LessThan(*c.MinPurchase) {
		return valueobject.ZeroKRW()
	}

	var discount valueobject.Money
	if c.IsPercent() {
		rate := decimal.Zero
		if c.Rate != nil {
			rate = c.Rate.Decimal()
		}
		raw := subtotal.Amount().Mul(rate).Div(decimal.NewFromInt(100)).Floor()
		discount = valueobject.KRWFromDecimal(raw)
		if cap := c.cap(); !cap.IsZero() {
			discount = valueobject.MinMoney(discount, cap)
		}
	} else {
		discount = c.fixedAmount()
	}

	return valueobject.MinMoney(discount.FloorZero(), subtotal)
}
