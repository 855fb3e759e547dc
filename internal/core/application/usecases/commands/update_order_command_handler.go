package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory, deps: deps}
}

// Handle returns the updated order or a NotFound, InvalidState, Validation or
// ConcurrentModification error.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "update",
		action:      ports.AuditUpdate,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(_ context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			if err := o.UpdateDetails(cmd.PartySize(), cmd.TableNo(), cmd.TakeoutName(), cmd.TakeoutPhone(), now); err != nil {
				return nil, err
			}
			return map[string]any{
				"partySize":    cmd.PartySize(),
				"tableNo":      cmd.TableNo(),
				"takeoutName":  cmd.TakeoutName(),
				"takeoutPhone": cmd.TakeoutPhone(),
			}, nil
		},
	})
}
