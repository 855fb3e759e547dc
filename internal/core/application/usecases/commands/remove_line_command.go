package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

var ErrRemoveLineCommandIsNotConstructed = errors.New(
	"RemoveLineCommand must be created via NewRemoveLineCommand constructor",
)

// RemoveLineCommand deletes a line from a Draft or Submitted order.
type RemoveLineCommand struct { //nolint:recvcheck //using for validation
	orderRef

	lineID kernel.UUID
}

func NewRemoveLineCommand(orderID, lineID, requestedBy kernel.UUID) (RemoveLineCommand, error) {
	ref, refErr := newOrderRef(orderID, requestedBy)

	if err := errors.Join(refErr, lineID.Validate()); err != nil {
		return RemoveLineCommand{}, err
	}

	return RemoveLineCommand{orderRef: ref, lineID: lineID}, nil
}

func (c RemoveLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineCommandIsNotConstructed)
}

func (c RemoveLineCommand) LineID() kernel.UUID {
	return c.lineID
}
