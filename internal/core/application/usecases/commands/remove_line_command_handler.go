package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

type RemoveLineCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewRemoveLineCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) RemoveLineCommandHandler {
	return RemoveLineCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h RemoveLineCommandHandler) Handle(ctx context.Context, cmd RemoveLineCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "remove_line",
		action:      ports.AuditRemoveItem,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(_ context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			if err := o.RemoveLine(cmd.LineID(), now); err != nil {
				return nil, err
			}
			return map[string]any{"lineId": cmd.LineID().String()}, nil
		},
	})
}
