package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

// orderRef is embedded by every command that targets an existing order.
type orderRef struct {
	orderID     kernel.UUID
	requestedBy kernel.UUID

	guard guard.ConstructorGuard
}

func newOrderRef(orderID, requestedBy kernel.UUID) (orderRef, error) {
	ref := orderRef{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ref.setOrderID(orderID),
		ref.setRequestedBy(requestedBy),
	); err != nil {
		return orderRef{}, err
	}

	return ref, nil
}

// OrderID returns the identifier of the targeted order.
func (r orderRef) OrderID() kernel.UUID {
	return r.orderID
}

// RequestedBy returns the staff member issuing the command.
func (r orderRef) RequestedBy() kernel.UUID {
	return r.requestedBy
}

func (r *orderRef) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	r.orderID = orderID
	return nil
}

func (r *orderRef) setRequestedBy(requestedBy kernel.UUID) error {
	if err := requestedBy.Validate(); err != nil {
		return err
	}

	r.requestedBy = requestedBy
	return nil
}
