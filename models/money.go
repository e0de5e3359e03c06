package models

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidMoney is returned when an amount cannot be decoded.
var ErrInvalidMoney = errors.New("invalid money amount")

// MaxMoney is the largest amount accepted on the wire: one billion in
// currency units.
const MaxMoney Money = 1_000_000_000_00

// Money is an amount in cents. On the wire it is a decimal number with two
// fractional digits, e.g. 12.50.
type Money int64

// NewMoneyFromFloat rounds f to the nearest cent.
func NewMoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// Discount returns the amount reduced by percent, rounded half-up to a cent.
// Percent is clamped to 0..100.
func (m Money) Discount(percent int) Money {
	switch {
	case percent <= 0:
		return m
	case percent >= 100:
		return 0
	}

	return (m*Money(100-percent) + 50) / 100
}

// Undiscount returns the base amount whose Discount(percent) equals m. It
// reports false when no base can be recovered: at 100% off, or when m is not
// a possible result of the discount.
func (m Money) Undiscount(percent int) (Money, bool) {
	switch {
	case percent <= 0:
		return m, true
	case percent >= 100:
		return 0, false
	}

	base := (m*100 + Money(100-percent)/2) / Money(100-percent)
	if base.Discount(percent) != m {
		return 0, false
	}
	return base, true
}

// Float64 returns the amount in currency units.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String formats the amount with two fractional digits.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidMoney, b)
	}
	if math.Abs(f) > MaxMoney.Float64() {
		return fmt.Errorf("%w: %q exceeds %s", ErrInvalidMoney, b, MaxMoney)
	}

	*m = NewMoneyFromFloat(f)
	return nil
}
