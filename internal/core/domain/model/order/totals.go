package order

import (
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// TaxRate applies to every order.
	TaxRate = decimal.RequireFromString("0.05")
	// ServiceChargeRate applies to DineIn orders only.
	ServiceChargeRate = decimal.RequireFromString("0.10")
)

// Totals are the four stored money fields of an order.
// Total always equals Subtotal + Tax + ServiceCharge exactly.
type Totals struct {
	subtotal      kernel.Money
	tax           kernel.Money
	serviceCharge kernel.Money
	total         kernel.Money
}

// CalculateTotals sums the line amounts into the subtotal and derives tax and
// service charge from it. Each stored field is rounded to two places; the total
// is the sum of the rounded parts.
func CalculateTotals(orderType Type, lines []*Line) Totals {
	subtotal := kernel.ZeroMoney()
	for _, l := range lines {
		subtotal = subtotal.Add(l.Amount())
	}
	subtotal = subtotal.Round()

	tax := subtotal.Rate(TaxRate).Round()
	serviceCharge := kernel.ZeroMoney()
	if orderType == DineIn {
		serviceCharge = subtotal.Rate(ServiceChargeRate).Round()
	}

	return Totals{
		subtotal:      subtotal,
		tax:           tax,
		serviceCharge: serviceCharge,
		total:         subtotal.Add(tax).Add(serviceCharge),
	}
}

// RestoreTotals rebuilds stored totals. It fails when total does not equal
// the sum of its parts.
func RestoreTotals(subtotal, tax, serviceCharge, total kernel.Money) (Totals, error) {
	if !subtotal.Add(tax).Add(serviceCharge).IsEqual(total) {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause("totals are inconsistent", fmt.Errorf(
			"total %s is not %s + %s + %s", total, subtotal, tax, serviceCharge))
	}
	return Totals{subtotal: subtotal, tax: tax, serviceCharge: serviceCharge, total: total}, nil
}

func (t Totals) Subtotal() kernel.Money {
	return t.subtotal
}

func (t Totals) Tax() kernel.Money {
	return t.tax
}

func (t Totals) ServiceCharge() kernel.Money {
	return t.serviceCharge
}

func (t Totals) Total() kernel.Money {
	return t.total
}
