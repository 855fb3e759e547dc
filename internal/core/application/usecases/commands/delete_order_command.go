package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes a Draft order together with its lines.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef
}

func NewDeleteOrderCommand(orderID, requestedBy kernel.UUID) (DeleteOrderCommand, error) {
	ref, err := newOrderRef(orderID, requestedBy)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderRef: ref}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}
