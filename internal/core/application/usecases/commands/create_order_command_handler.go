package commands

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// CreateOrderCommandHandler opens Draft orders. It draws the next number for
// today's business date from the numbering authority before the order is
// stored; a number whose order then fails to persist is not reused.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	numberer   ports.OrderNumberer
	deps       Dependencies
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	numberer ports.OrderNumberer,
	deps Dependencies,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numberer:   numberer,
		deps:       deps,
	}
}

// Handle returns the created order, or a Validation or NumberingUnavailable error.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (created *order.Order, err error) {
	defer func() {
		h.deps.Metrics.ObserveOperation("create", err)
	}()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	number, err := h.numberer.Next(ctx, h.deps.Calendar.Today())
	if err != nil {
		return nil, err
	}

	now := h.deps.Calendar.Now()
	aggregate, err := order.NewOrder(kernel.NewUUID(), number, cmd.Type(), cmd.Details(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.deps.audit(ctx, ports.AuditEvent{
		Action:      ports.AuditCreate,
		OrderID:     aggregate.ID(),
		OrderNo:     number.String(),
		RequestedBy: cmd.RequestedBy(),
		OccurredAt:  now,
		Summary: map[string]any{
			"type":    aggregate.Type().String(),
			"tableNo": aggregate.Details().TableNo(),
		},
	})

	return aggregate, nil
}
