package valueobject

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is a value object representing an amount of Korean won.
// It is immutable - all operations return new Money instances.
//
// Storefront documents carry prices in heterogeneous shapes (the number
// 50000, the string "50000", the formatted string "₩50,000"); Money
// accepts all of them when decoding JSON and always encodes back as a
// plain number.
type Money struct {
	amount decimal.Decimal
}

// ZeroKRW is the zero amount
func ZeroKRW() Money {
	return Money{amount: decimal.Zero}
}

// KRW creates Money from a whole-won amount
func KRW(amount int64) Money {
	return Money{amount: decimal.NewFromInt(amount)}
}

// KRWFromDecimal creates Money from a decimal amount
func KRWFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// ParseKRW creates Money from a formatted string such as "₩50,000"
func ParseKRW(s string) Money {
	return Money{amount: ToNumber(s)}
}

// Amount returns the underlying decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Int64 returns the amount truncated to whole won
func (m Money) Int64() int64 {
	return m.amount.IntPart()
}

// Add returns the sum of two amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt returns the amount multiplied by an integer quantity
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsPositive reports whether the amount is above zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equal reports whether two amounts are equal
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThanOrEqual reports whether m >= other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// MinMoney returns the smaller of two amounts
func MinMoney(a, b Money) Money {
	if a.amount.LessThan(b.amount) {
		return a
	}
	return b
}

// MaxMoney returns the larger of two amounts
func MaxMoney(a, b Money) Money {
	if a.amount.GreaterThan(b.amount) {
		return a
	}
	return b
}

// FloorZero clamps negative amounts to zero
func (m Money) FloorZero() Money {
	if m.amount.IsNegative() {
		return ZeroKRW()
	}
	return m
}

// Format renders the amount as "₩50,000"
func (m Money) Format() string {
	n := m.amount.IntPart()
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-₩" + string(out)
	}
	return "₩" + string(out)
}

// String implements fmt.Stringer
func (m Money) String() string {
	return m.Format()
}

// MarshalJSON encodes the amount as a plain JSON number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON accepts numbers and formatted strings
func (m *Money) UnmarshalJSON(data []byte) error {
	var s Scalar
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	m.amount = s.Decimal()
	return nil
}
