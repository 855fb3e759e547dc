package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// PayOrderCommandHandler records payments. A payment that brings the amount
// paid to or above the total settles the order in the same commit.
type PayOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewPayOrderCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) PayOrderCommandHandler {
	return PayOrderCommandHandler{uowFactory: uowFactory, deps: deps}
}

// Handle returns the updated order or a NotFound, InvalidState or
// ConcurrentModification error. Two terminals paying the same order at once
// cannot both succeed against the same version.
func (h PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "pay",
		action:      ports.AuditPay,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(_ context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			payment, err := o.Pay(kernel.NewUUID(), cmd.Amount(), cmd.Method(), cmd.RequestedBy(), now)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"paymentId": payment.ID().String(),
				"amount":    payment.Amount().String(),
				"method":    payment.Method().String(),
				"status":    o.Status().String(),
			}, nil
		},
	})
}
