package coupon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func money(n int64) *valueobject.Money {
	m := valueobject.KRW(n)
	return &m
}

func scalar(n int64) *valueobject.Scalar {
	s := valueobject.ScalarFromInt(n)
	return &s
}

func TestDiscountFor_Fixed(t *testing.T) {
	subtotal := valueobject.KRW(50000)

	tests := []struct {
		name   string
		coupon *Coupon
		want   int64
	}{
		{"nil coupon", nil, 0},
		{"plain fixed amount", &Coupon{Type: TypeFixed, Amount: valueobject.KRW(10000)}, 10000},
		{"amount falls back to value", &Coupon{Type: TypeFixed, Value: money(3000)}, 3000},
		{"amount embedded in name", &Coupon{Type: TypeFixed, Name: "신규가입 5,000원 쿠폰"}, 5000},
		{"clamped to subtotal", &Coupon{Type: TypeFixed, Amount: valueobject.KRW(90000)}, 50000},
		{"already used", &Coupon{Type: TypeFixed, Amount: valueobject.KRW(10000), Used: true}, 0},
		{"below minimum purchase", &Coupon{Type: TypeFixed, Amount: valueobject.KRW(10000), MinPurchase: money(60000)}, 0},
		{"at minimum purchase", &Coupon{Type: TypeFixed, Amount: valueobject.KRW(10000), MinPurchase: money(50000)}, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountFor(subtotal, tt.coupon, now)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestDiscountFor_Percent(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		coupon   *Coupon
		want     int64
	}{
		{"15 percent", 40000, &Coupon{Type: TypePercent, Rate: scalar(15)}, 6000},
		{"floors fractional won", 33333, &Coupon{Type: TypePercent, Rate: scalar(10)}, 3333},
		{"capped by max", 100000, &Coupon{Type: TypePercent, Rate: scalar(20), Max: money(5000)}, 5000},
		{"cap falls back to amount", 100000, &Coupon{Type: TypePercent, Rate: scalar(20), Amount: valueobject.KRW(8000)}, 8000},
		{"legacy percentage spelling", 10000, &Coupon{Type: "percentage", Rate: scalar(10)}, 1000},
		{"rate spelling", 10000, &Coupon{Type: "rate", Rate: scalar(10)}, 1000},
		{"missing rate yields zero", 10000, &Coupon{Type: TypePercent}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountFor(valueobject.KRW(tt.subtotal), tt.coupon, now)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestDiscountFor_Expiry(t *testing.T) {
	expired := &Coupon{Type: TypeFixed, Amount: valueobject.KRW(10000), ValidUntil: "2024-01-31"}
	assert.True(t, expired.IsExpired(now))
	assert.Equal(t, int64(0), DiscountFor(valueobject.KRW(50000), expired, now).Int64())

	// expiresAt is the older field name for the same thing
	alive := &Coupon{Type: TypeFixed, Amount: valueobject.KRW(10000), ExpiresAt: "2024-12-31"}
	assert.False(t, alive.IsExpired(now))
	assert.Equal(t, int64(10000), DiscountFor(valueobject.KRW(50000), alive, now).Int64())

	// an unparseable date never expires
	garbled := &Coupon{Type: TypeFixed, Amount: valueobject.KRW(10000), ValidUntil: "언제나"}
	assert.False(t, garbled.IsExpired(now))
}

func TestMarkUsed(t *testing.T) {
	c := NewWelcomeCoupon(now)
	require.True(t, c.IsUsable(now))

	require.NoError(t, c.MarkUsed(now))
	assert.True(t, c.Used)
	assert.Equal(t, "2024-03-01T12:00:00Z", c.UsedAt)
	assert.False(t, c.IsUsable(now))

	err := c.MarkUsed(now)
	require.Error(t, err)
}

func TestNewWelcomeCoupon(t *testing.T) {
	c := NewWelcomeCoupon(now)
	assert.Equal(t, WelcomeCouponID, c.ID)
	assert.Equal(t, "신규가입 1만원 할인 쿠폰", c.Name)
	assert.Equal(t, "₩10,000", c.Discount)
	assert.Equal(t, int64(10000), c.Amount.Int64())
	assert.False(t, c.IsPercent())
}
