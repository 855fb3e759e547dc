package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

var ErrPayOrderCommandIsNotConstructed = errors.New(
	"PayOrderCommand must be created via NewPayOrderCommand constructor",
)

// PayOrderCommand records a payment against a Confirmed order.
//
// Example:
//
//	amount, _ := kernel.MoneyFromString("10000")
//	cmd, err := NewPayOrderCommand(orderID, amount, order.Cash, staffID)
//	if err != nil {
//	    return err
//	}
//	paid, err := handler.Handle(ctx, cmd)
//	// paid.Status() is Paid once the payments cover the total
type PayOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef

	amount kernel.Money
	method order.Method
}

func NewPayOrderCommand(orderID kernel.UUID, amount kernel.Money, method order.Method, requestedBy kernel.UUID) (PayOrderCommand, error) {
	ref, refErr := newOrderRef(orderID, requestedBy)

	var amountErr error
	if !amount.IsPositive() {
		amountErr = errs.NewValueIsInvalidError("amount must be positive")
	} else if _, err := kernel.NewMoney(amount.Decimal()); err != nil {
		amountErr = err
	}

	if err := errors.Join(refErr, amountErr, method.Validate()); err != nil {
		return PayOrderCommand{}, err
	}

	return PayOrderCommand{orderRef: ref, amount: amount, method: method}, nil
}

func (c PayOrderCommand) Validate() error {
	return c.guard.Validate(ErrPayOrderCommandIsNotConstructed)
}

func (c PayOrderCommand) Amount() kernel.Money {
	return c.amount
}

func (c PayOrderCommand) Method() order.Method {
	return c.method
}
