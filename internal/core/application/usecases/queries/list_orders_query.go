package queries

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders by optional status and creation-time window.
// From is inclusive, To is exclusive.
type ListOrdersQuery struct {
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(status *order.Status, from, to *time.Time) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if from != nil && to != nil && !from.Before(*to) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"from",
			fmt.Errorf("%s is not before %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}

	return ListOrdersQuery{
		filter: ports.OrderFilter{Status: status, From: from, To: to},
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}
