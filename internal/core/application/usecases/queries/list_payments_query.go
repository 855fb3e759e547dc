package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrListPaymentsQueryIsNotConstructed = errors.New(
	"ListPaymentsQuery must be created via NewListPaymentsQuery constructor",
)

type ListPaymentsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListPaymentsQuery(orderID kernel.UUID) (ListPaymentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListPaymentsQuery{}, err
	}
	return ListPaymentsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentsQueryIsNotConstructed)
}

func (q ListPaymentsQuery) OrderID() kernel.UUID {
	return q.orderID
}
