package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

type UpdateLineCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewUpdateLineCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) UpdateLineCommandHandler {
	return UpdateLineCommandHandler{uowFactory: uowFactory, deps: deps}
}

func (h UpdateLineCommandHandler) Handle(ctx context.Context, cmd UpdateLineCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "update_line",
		action:      ports.AuditUpdateItem,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(_ context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			if err := o.UpdateLine(cmd.LineID(), cmd.Quantity(), cmd.Note(), now); err != nil {
				return nil, err
			}
			return map[string]any{
				"lineId":   cmd.LineID().String(),
				"quantity": cmd.Quantity(),
			}, nil
		},
	})
}
