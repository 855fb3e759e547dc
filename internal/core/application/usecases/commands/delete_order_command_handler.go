package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	deps       Dependencies
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory, deps Dependencies) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory, deps: deps}
}

// Handle deletes the order if it is still Draft. A concurrent change to the
// order since it was loaded fails with ConcurrentModification.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (err error) {
	defer func() {
		h.deps.Metrics.ObserveOperation("delete", err)
	}()

	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ValidateDelete(); err != nil {
		return err
	}

	if err = repo.Delete(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.deps.audit(ctx, ports.AuditEvent{
		Action:      ports.AuditDelete,
		OrderID:     aggregate.ID(),
		OrderNo:     aggregate.Number().String(),
		RequestedBy: cmd.RequestedBy(),
		OccurredAt:  h.deps.Calendar.Now(),
	})

	return nil
}
