package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// ConfirmOrderCommandHandler freezes an order's totals; payments are accepted
// from here on.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory, deps: deps}
}

// Handle returns the updated order or a NotFound, InvalidState or
// ConcurrentModification error.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "confirm",
		action:      ports.AuditConfirm,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(_ context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			if err := o.Confirm(now); err != nil {
				return nil, err
			}
			return map[string]any{"status": o.Status().String()}, nil
		},
	})
}
