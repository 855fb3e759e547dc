package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, deps: deps}
}

// Handle returns the cancelled order. Paid orders, and orders already
// cancelled, fail with InvalidState.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "cancel",
		action:      ports.AuditCancel,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(_ context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			if err := o.Cancel(now); err != nil {
				return nil, err
			}
			return map[string]any{"status": o.Status().String()}, nil
		},
	})
}
