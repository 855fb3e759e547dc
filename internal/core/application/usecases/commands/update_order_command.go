package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand replaces the party size, table number and takeout contact
// of a Draft or Submitted order. The DineIn rules are checked against the
// stored order type by the handler.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderRef

	partySize    *int
	tableNo      string
	takeoutName  string
	takeoutPhone string
}

func NewUpdateOrderCommand(
	orderID kernel.UUID,
	partySize *int,
	tableNo, takeoutName, takeoutPhone string,
	requestedBy kernel.UUID,
) (UpdateOrderCommand, error) {
	ref, err := newOrderRef(orderID, requestedBy)
	if err != nil {
		return UpdateOrderCommand{}, err
	}

	cmd := UpdateOrderCommand{
		orderRef:     ref,
		tableNo:      tableNo,
		takeoutName:  takeoutName,
		takeoutPhone: takeoutPhone,
	}
	if partySize != nil {
		size := *partySize
		cmd.partySize = &size
	}
	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) PartySize() *int {
	if c.partySize == nil {
		return nil
	}
	size := *c.partySize
	return &size
}

func (c UpdateOrderCommand) TableNo() string {
	return c.tableNo
}

func (c UpdateOrderCommand) TakeoutName() string {
	return c.takeoutName
}

func (c UpdateOrderCommand) TakeoutPhone() string {
	return c.takeoutPhone
}
