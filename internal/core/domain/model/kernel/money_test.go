package kernel_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should accept zero and positive amounts", func(t *testing.T) {
		for _, s := range []string{"0", "0.01", "7000", "12.500", "9999999999.99"} {
			m, err := kernel.NewMoney(decimal.RequireFromString(s))

			require.NoError(t, err, s)
			assert.True(t, m.Decimal().Equal(decimal.RequireFromString(s)))
		}
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject amounts that do not fit numeric(12,2)", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.RequireFromString("10000000000"))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject sub-cent amounts", func(t *testing.T) {
		for _, s := range []string{"0.001", "19549.995", "12.5001"} {
			_, err := kernel.NewMoney(decimal.RequireFromString(s))

			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})
}

func TestMoneyFromString(t *testing.T) {
	t.Run("should parse decimal strings", func(t *testing.T) {
		m, err := kernel.MoneyFromString("12.5")

		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("should return validation error for garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("twelve")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should return validation error for a sub-cent amount", func(t *testing.T) {
		_, err := kernel.MoneyFromString("0.001")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should extend and sum line amounts", func(t *testing.T) {
		subtotal := kernel.MustMoney("7000").Times(2).Add(kernel.MustMoney("3000"))

		assert.Equal(t, "17000.00", subtotal.String())
	})

	t.Run("should apply rates without intermediate rounding", func(t *testing.T) {
		tax := kernel.MustMoney("0.99").Rate(decimal.RequireFromString("0.05"))

		assert.True(t, tax.Decimal().Equal(decimal.RequireFromString("0.0495")))
		assert.Equal(t, "0.05", tax.Round().String())
	})

	t.Run("should round half away from zero", func(t *testing.T) {
		percent := decimal.RequireFromString("0.01")

		assert.Equal(t, "0.13", kernel.MustMoney("12.50").Rate(percent).Round().String())
		assert.Equal(t, "0.12", kernel.MustMoney("12.49").Rate(percent).Round().String())
	})

	t.Run("should floor subtraction at zero", func(t *testing.T) {
		assert.True(t, kernel.MustMoney("10").Sub(kernel.MustMoney("25")).IsZero())
		assert.Equal(t, "15.00", kernel.MustMoney("25").Sub(kernel.MustMoney("10")).String())
	})

	t.Run("should compare numerically", func(t *testing.T) {
		assert.True(t, kernel.MustMoney("17000").IsEqual(kernel.MustMoney("17000.00")))
		assert.True(t, kernel.MustMoney("19550").GreaterThanOrEqual(kernel.MustMoney("19550.00")))
		assert.False(t, kernel.MustMoney("10000").GreaterThanOrEqual(kernel.MustMoney("19550")))
	})

	t.Run("zero value is a valid zero amount", func(t *testing.T) {
		var m kernel.Money

		assert.True(t, m.IsZero())
		assert.False(t, m.IsPositive())
		assert.Equal(t, "0.00", m.String())
	})
}

func TestMustMoney(t *testing.T) {
	assert.Panics(t, func() { kernel.MustMoney("-5") })
}
