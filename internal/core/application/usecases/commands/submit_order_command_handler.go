package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewSubmitOrderCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{uowFactory: uowFactory, deps: deps}
}

// Handle returns the updated order or a NotFound, InvalidState or
// ConcurrentModification error.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "submit",
		action:      ports.AuditSubmit,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(_ context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			if err := o.Submit(now); err != nil {
				return nil, err
			}
			return map[string]any{"status": o.Status().String()}, nil
		},
	})
}
