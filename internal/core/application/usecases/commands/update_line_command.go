package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

var ErrUpdateLineCommandIsNotConstructed = errors.New(
	"UpdateLineCommand must be created via NewUpdateLineCommand constructor",
)

// UpdateLineCommand changes the quantity and note of an existing line.
type UpdateLineCommand struct { //nolint:recvcheck //using for validation
	orderRef

	lineID   kernel.UUID
	quantity int
	note     string
}

func NewUpdateLineCommand(orderID, lineID kernel.UUID, quantity int, note string, requestedBy kernel.UUID) (UpdateLineCommand, error) {
	ref, refErr := newOrderRef(orderID, requestedBy)

	if err := errors.Join(
		refErr,
		lineID.Validate(),
		validateQuantity(quantity),
		validateNote(note),
	); err != nil {
		return UpdateLineCommand{}, err
	}

	return UpdateLineCommand{
		orderRef: ref,
		lineID:   lineID,
		quantity: quantity,
		note:     note,
	}, nil
}

func (c UpdateLineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineCommandIsNotConstructed)
}

func (c UpdateLineCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c UpdateLineCommand) Quantity() int {
	return c.quantity
}

func (c UpdateLineCommand) Note() string {
	return c.note
}
