package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// AddLineCommandHandler snapshots the menu item's name and today's price into a
// new order line.
type AddLineCommandHandler struct {
	uowFactory OrderUoWFactory
	prices     ports.PriceLookup
	deps       Dependencies
}

func NewAddLineCommandHandler(uowFactory OrderUoWFactory, prices ports.PriceLookup, deps Dependencies) AddLineCommandHandler {
	return AddLineCommandHandler{uowFactory: uowFactory, prices: prices, deps: deps}
}

// Handle returns the updated order or a NotFound, InvalidState, NoPriceAvailable
// or ConcurrentModification error. The order status is checked before the price
// is looked up.
func (h AddLineCommandHandler) Handle(ctx context.Context, cmd AddLineCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.deps.run(ctx, h.uowFactory, mutation{
		operation:   "add_line",
		action:      ports.AuditAddItem,
		orderID:     cmd.OrderID(),
		requestedBy: cmd.RequestedBy(),
		apply: func(ctx context.Context, o *order.Order, now time.Time) (map[string]any, error) {
			if err := o.Status().ValidateLineChange(order.OpAddLine); err != nil {
				return nil, err
			}

			price, err := h.prices.PriceFor(ctx, cmd.MenuItemID(), h.deps.Calendar.Today())
			if err != nil {
				return nil, err
			}

			menuItemID := cmd.MenuItemID()
			line, err := order.NewLine(kernel.NewUUID(), &menuItemID, price.Name, price.Price, cmd.Quantity(), cmd.Note())
			if err != nil {
				return nil, err
			}

			if err = o.AddLine(line, now); err != nil {
				return nil, err
			}

			return map[string]any{
				"lineId":        line.ID().String(),
				"menuItemId":    menuItemID.String(),
				"quantity":      line.Quantity(),
				"snapshotPrice": line.UnitPrice().String(),
			}, nil
		},
	})
}
