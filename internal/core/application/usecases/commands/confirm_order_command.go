package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand moves a Submitted order to Confirmed, freezing its totals.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef
}

func NewConfirmOrderCommand(orderID, requestedBy kernel.UUID) (ConfirmOrderCommand, error) {
	ref, err := newOrderRef(orderID, requestedBy)
	if err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderRef: ref}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}
