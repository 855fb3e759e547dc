package commands

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/metrics"
)

// Dependencies are the collaborators shared by all order command handlers.
// Zero fields fall back to UTC time, a discarding logger and no metrics.
type Dependencies struct {
	Calendar  kernel.Calendar
	AuditSink ports.AuditSink
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

func (d Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// audit hands a committed change to the audit sink. Failures are logged and
// counted, never returned: the order change is already durable.
func (d Dependencies) audit(ctx context.Context, event ports.AuditEvent) {
	if d.AuditSink == nil {
		return
	}
	if err := d.AuditSink.Record(ctx, event); err != nil {
		d.logger().ErrorContext(ctx, "audit event not recorded",
			"order_id", event.OrderID.String(),
			"action", string(event.Action),
			"error", err,
		)
		d.Metrics.AuditFailed(string(event.Action))
	}
}

// mutation describes one load -> apply -> update round trip on an order.
type mutation struct {
	operation   string
	action      ports.AuditAction
	orderID     kernel.UUID
	requestedBy kernel.UUID

	// apply mutates the loaded aggregate and returns the audit summary.
	apply func(ctx context.Context, o *order.Order, now time.Time) (map[string]any, error)
}

// run executes m in its own unit of work. The version read by Get is the one
// checked by Update, so a concurrent writer surfaces as errs.ErrConcurrentModification.
func (d Dependencies) run(ctx context.Context, uowFactory OrderUoWFactory, m mutation) (result *order.Order, err error) {
	defer func() {
		d.Metrics.ObserveOperation(m.operation, err)
	}()

	uow := uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, m.orderID)
	if err != nil {
		return nil, err
	}

	now := d.Calendar.Now()
	summary, err := m.apply(ctx, aggregate, now)
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	d.audit(ctx, ports.AuditEvent{
		Action:      m.action,
		OrderID:     aggregate.ID(),
		OrderNo:     aggregate.Number().String(),
		RequestedBy: m.requestedBy,
		OccurredAt:  now,
		Summary:     summary,
	})

	return aggregate, nil
}
