package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderNumberer is the order numbering authority. Next serializes concurrent
// callers for the same date: N calls return N distinct, densely numbered
// results. When the backing store is unreachable, or the day's sequence is
// exhausted, it fails with errs.ErrNumberingUnavailable and issues nothing.
type OrderNumberer interface {
	Next(ctx context.Context, date kernel.BusinessDate) (order.Number, error)
}

// CounterPruner removes day counters older than a cutoff. Backends whose
// counters expire on their own do not implement it.
type CounterPruner interface {
	PruneBefore(ctx context.Context, cutoff kernel.BusinessDate) (int64, error)
}
