package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

var ErrAddLineCommandIsNotConstructed = errors.New(
	"AddLineCommand must be created via NewAddLineCommand constructor",
)

// AddLineCommand adds a menu item to a Draft or Submitted order. Name and price
// are looked up for today's business date when the command is handled.
//
// Example:
//
//	cmd, err := NewAddLineCommand(orderID, menuItemID, 2, "no coriander", staffID)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrNoPriceAvailable) {
//	    // the item is not on today's menu
//	}
type AddLineCommand struct { //nolint:recvcheck //using for validation
	orderRef

	menuItemID kernel.UUID
	quantity   int
	note       string
}

func NewAddLineCommand(orderID, menuItemID kernel.UUID, quantity int, note string, requestedBy kernel.UUID) (AddLineCommand, error) {
	ref, refErr := newOrderRef(orderID, requestedBy)
	cmd := AddLineCommand{orderRef: ref}

	if err := errors.Join(
		refErr,
		cmd.setMenuItemID(menuItemID),
		cmd.setQuantity(quantity),
		cmd.setNote(note),
	); err != nil {
		return AddLineCommand{}, err
	}

	return cmd, nil
}

func (c AddLineCommand) Validate() error {
	return c.guard.Validate(ErrAddLineCommandIsNotConstructed)
}

func (c AddLineCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

func (c AddLineCommand) Quantity() int {
	return c.quantity
}

func (c AddLineCommand) Note() string {
	return c.note
}

func (c *AddLineCommand) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}

	c.menuItemID = menuItemID
	return nil
}

func (c *AddLineCommand) setQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	c.quantity = quantity
	return nil
}

func (c *AddLineCommand) setNote(note string) error {
	if err := validateNote(note); err != nil {
		return err
	}

	c.note = note
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < order.MinQuantity || quantity > order.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, order.MinQuantity, order.MaxQuantity)
	}
	return nil
}

func validateNote(note string) error {
	if n := utf8.RuneCountInString(note); n > order.MaxNoteLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"note is too long",
			fmt.Errorf("%d characters exceeds the limit of %d", n, order.MaxNoteLength),
		)
	}
	return nil
}
