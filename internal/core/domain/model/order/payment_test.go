package order_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("should record amount, method and staff member", func(t *testing.T) {
		p, err := order.NewPayment(kernel.NewUUID(), kernel.MustMoney("250.50"), order.DebitCard, now, staffID)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "250.50", p.Amount().String())
		assert.Equal(t, order.DebitCard, p.Method())
		assert.Equal(t, now, p.PaidAt())
	})

	t.Run("should require a staff member", func(t *testing.T) {
		_, err := order.NewPayment(kernel.NewUUID(), kernel.MustMoney("1"), order.Cash, now, kernel.UUID{})

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should require a positive amount", func(t *testing.T) {
		_, err := order.NewPayment(kernel.NewUUID(), kernel.ZeroMoney(), order.Cash, now, staffID)

		assert.ErrorIs(t, err, order.ErrPaymentAmountIsRequired)
	})
}

func TestMethod(t *testing.T) {
	t.Run("should parse every method name", func(t *testing.T) {
		for _, m := range []order.Method{order.Cash, order.CreditCard, order.DebitCard, order.DigitalWallet, order.BankTransfer} {
			parsed, err := order.ParseMethod(m.String())

			require.NoError(t, err)
			assert.Equal(t, m, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseMethod("Cheque")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Error(t, order.UnknownMethod.Validate())
	})
}
