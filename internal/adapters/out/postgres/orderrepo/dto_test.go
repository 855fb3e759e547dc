package orderrepo

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mapperNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func confirmedTakeout(t *testing.T) *order.Order {
	t.Helper()

	number, err := order.NewNumber(kernel.NewBusinessDate(mapperNow, time.UTC), 7)
	require.NoError(t, err)
	details, err := order.NewDetails(order.Takeout, nil, "", "Chen", "0912345678")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, order.Takeout, details, mapperNow)
	require.NoError(t, err)

	item := kernel.NewUUID()
	line, err := order.NewLine(kernel.NewUUID(), &item, "Beef noodles", kernel.MustMoney("180.50"), 3, "")
	require.NoError(t, err)
	require.NoError(t, o.AddLine(line, mapperNow))
	require.NoError(t, o.Submit(mapperNow))
	require.NoError(t, o.Confirm(mapperNow))
	return o
}

// storedAs mimics what numeric(12,2) columns hand back.
func storedAs(dto OrderDTO) OrderDTO {
	dto.Subtotal = dto.Subtotal.Round(2)
	dto.Tax = dto.Tax.Round(2)
	dto.ServiceCharge = dto.ServiceCharge.Round(2)
	dto.Total = dto.Total.Round(2)
	for i := range dto.Lines {
		dto.Lines[i].UnitPrice = dto.Lines[i].UnitPrice.Round(2)
	}
	for i := range dto.Payments {
		dto.Payments[i].Amount = dto.Payments[i].Amount.Round(2)
	}
	return dto
}

func TestMapper_PaymentRoundTrip(t *testing.T) {
	t.Run("partial payment survives storage rounding", func(t *testing.T) {
		o := confirmedTakeout(t)
		_, err := o.Pay(kernel.NewUUID(), kernel.MustMoney("0.01"), order.Cash, kernel.NewUUID(), mapperNow)
		require.NoError(t, err)

		restored, err := toDomain(storedAs(fromDomain(o)))

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, restored.Status())
		assert.Equal(t, o.Totals().Total().String(), restored.Totals().Total().String())
		require.Len(t, restored.Payments(), 1)
		assert.Equal(t, "0.01", restored.Payments()[0].Amount().String())
		assert.Equal(t, o.BalanceDue().String(), restored.BalanceDue().String())
	})

	t.Run("sub-cent payment never reaches the rows", func(t *testing.T) {
		o := confirmedTakeout(t)
		tenthOfCent := kernel.MustMoney("0.01").Rate(decimal.RequireFromString("0.1"))

		_, err := o.Pay(kernel.NewUUID(), tenthOfCent, order.Cash, kernel.NewUUID(), mapperNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, o.Payments())
		restored, err := toDomain(storedAs(fromDomain(o)))
		require.NoError(t, err)
		assert.Empty(t, restored.Payments())
	})
}
