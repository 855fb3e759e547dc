package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new order.
// DineIn orders require a table number and a party size.
//
// Example:
//
//	partySize := 2
//	cmd, err := NewCreateOrderCommand(order.DineIn, &partySize, "5", "", "", staffID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, numberer, deps)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderType   order.Type
	details     order.Details
	requestedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order type, its metadata and the staff member.
func NewCreateOrderCommand(
	orderType order.Type,
	partySize *int,
	tableNo, takeoutName, takeoutPhone string,
	requestedBy kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	details, detailsErr := order.NewDetails(orderType, partySize, tableNo, takeoutName, takeoutPhone)
	if err := errors.Join(detailsErr, cmd.setRequestedBy(requestedBy)); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderType = orderType
	cmd.details = details
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Type() order.Type {
	return c.orderType
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) RequestedBy() kernel.UUID {
	return c.requestedBy
}

func (c *CreateOrderCommand) setRequestedBy(requestedBy kernel.UUID) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}

	c.requestedBy = requestedBy
	return nil
}
