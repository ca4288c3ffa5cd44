package valueobject

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToNumber extracts the numeric value from mixed price/rate strings such
// as "₩50,000", "50000원" or "15%". Every non-digit rune is dropped; an
// empty result yields zero.
func ToNumber(v string) decimal.Decimal {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(n)
}

// Scalar is a number that may arrive as a JSON number or as a string with
// formatting noise ("15%", "₩10,000", "2"). It always encodes back as a
// plain JSON number.
type Scalar struct {
	value decimal.Decimal
}

// NewScalar creates a Scalar from a decimal value
func NewScalar(d decimal.Decimal) Scalar {
	return Scalar{value: d}
}

// ScalarFromInt creates a Scalar from an int64
func ScalarFromInt(n int64) Scalar {
	return Scalar{value: decimal.NewFromInt(n)}
}

// Decimal returns the underlying decimal value
func (s Scalar) Decimal() decimal.Decimal {
	return s.value
}

// Int returns the value truncated to an int
func (s Scalar) Int() int {
	return int(s.value.IntPart())
}

// IsZero reports whether the value is zero
func (s Scalar) IsZero() bool {
	return s.value.IsZero()
}

// UnmarshalJSON accepts a JSON number, a numeric string, or a formatted
// string and extracts the numeric value. Unparseable input decodes to
// zero rather than failing, matching how the storefront treats malformed
// prices.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		s.value = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		raw := string(data[1 : len(data)-1])
		s.value = ToNumber(raw)
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		s.value = decimal.Zero
		return nil
	}
	s.value = d
	return nil
}

// MarshalJSON encodes the value as a plain JSON number
func (s Scalar) MarshalJSON() ([]byte, error) {
	return []byte(s.value.String()), nil
}
