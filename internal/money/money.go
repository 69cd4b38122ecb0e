// Package money provides the exact decimal value type used for every price,
// total, discount and payment amount in the system. Amounts are immutable:
// every operation returns a new value and never mutates its receiver.
//
// Arithmetic is exact — no rounding happens until Round is called explicitly,
// typically at a presentation boundary.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("money: division by zero")

// divScale is the number of fractional digits kept by Div. Base prices are
// derived by dividing VAT-inclusive prices, which rarely terminates, so the
// quotient needs enough digits that re-multiplying rounds back exactly.
const divScale = 34

// Money is an exact decimal amount in the register's single currency unit.
// The zero value represents the amount 0 and is ready to use.
type Money struct {
	value decimal.Decimal
}

// Zero is the amount 0.
var Zero = Money{}

// New parses a decimal string such as "29.90" or "0.06".
func New(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

// MustNew is New for literals known to be valid; it panics on a bad string.
func MustNew(s string) Money {
	m, err := New(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt returns the amount n.
func FromInt(n int64) Money {
	return Money{value: decimal.NewFromInt(n)}
}

// FromDecimal wraps an existing decimal value.
func FromDecimal(d decimal.Decimal) Money {
	return Money{value: d}
}

// Decimal exposes the underlying decimal for persistence and DTO layers.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{value: m.value.Sub(other.value)}
}

// Mul returns m * other.
func (m Money) Mul(other Money) Money {
	return Money{value: m.value.Mul(other.value)}
}

// Div returns m / other with divScale fractional digits of precision.
// Returns ErrDivisionByZero when other is zero.
func (m Money) Div(other Money) (Money, error) {
	if other.value.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{value: m.value.DivRound(other.value, divScale)}, nil
}

// Round returns m scaled to exactly two fractional digits, half-up.
// Rounding is idempotent: m.Round().Round() == m.Round().
func (m Money) Round() Money {
	return Money{value: m.value.Round(2)}
}

// Cmp returns -1, 0 or 1 as m is less than, equal to or greater than other.
func (m Money) Cmp(other Money) int {
	return m.value.Cmp(other.value)
}

// Equal reports numeric equality: 10 equals 10.00.
func (m Money) Equal(other Money) bool {
	return m.value.Cmp(other.value) == 0
}

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsPositive() bool { return m.value.IsPositive() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// StringFixed renders the amount with exactly two decimals, e.g. "74.70".
// Unlike String it never trims trailing zeros.
func (m Money) StringFixed() string {
	return m.value.StringFixed(2)
}

// Colonized renders the amount with exactly two decimals and a colon as the
// decimal separator, e.g. "1234:56". This is the receipt wire format and must
// be reproduced bit-exact wherever money crosses the receipt boundary.
func (m Money) Colonized() string {
	return strings.Replace(m.StringFixed(), ".", ":", 1)
}

// String returns the unrounded decimal representation.
func (m Money) String() string { return m.value.String() }

// MarshalJSON renders the amount as a JSON number string, like the
// underlying decimal type.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON accepts both quoted and bare decimal numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
