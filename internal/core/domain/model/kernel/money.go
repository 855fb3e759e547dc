package kernel

import (
	"fmt"

	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fraction digits persisted for monetary amounts.
const MoneyScale = 2

// maxMoney mirrors the numeric(12,2) column the amounts are stored in.
var maxMoney = decimal.RequireFromString("9999999999.99")

// Money is a non-negative fixed-point amount. The zero value is a valid zero amount.
//
// Intermediate results (line extensions, sums) keep full precision; Round is applied
// only when an amount is stored as an order total field.
type Money struct {
	amount decimal.Decimal
}

// NewMoney validates amount against the storable range [0, 9999999999.99].
// Amounts with non-zero digits past MoneyScale are rejected: the column would
// silently round them.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() || amount.GreaterThan(maxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("money", amount.String(), 0, maxMoney.String())
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money", fmt.Errorf("%s has more than %d fraction digits", amount.String(), MoneyScale),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "19550" or "12.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q is not a decimal: %w", s, err))
	}
	return NewMoney(amount)
}

// MustMoney panics when s is not a valid amount. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other, floored at zero.
func (m Money) Sub(other Money) Money {
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		return ZeroMoney()
	}
	return Money{amount: diff}
}

// Times multiplies by a non-negative quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Rate multiplies by a fractional rate such as 0.05, keeping full precision.
func (m Money) Rate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// Round rounds half away from zero to MoneyScale fraction digits.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(MoneyScale)}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// IsEqual compares numerically, so 17000 equals 17000.00.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats with exactly MoneyScale fraction digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
