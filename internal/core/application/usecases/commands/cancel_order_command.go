package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand abandons a Draft, Submitted or Confirmed order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef
}

func NewCancelOrderCommand(orderID, requestedBy kernel.UUID) (CancelOrderCommand, error) {
	ref, err := newOrderRef(orderID, requestedBy)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderRef: ref}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
