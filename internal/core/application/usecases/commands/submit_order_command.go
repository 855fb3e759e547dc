package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand moves a Draft order with at least one line to Submitted.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef
}

func NewSubmitOrderCommand(orderID, requestedBy kernel.UUID) (SubmitOrderCommand, error) {
	ref, err := newOrderRef(orderID, requestedBy)
	if err != nil {
		return SubmitOrderCommand{}, err
	}
	return SubmitOrderCommand{orderRef: ref}, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}
