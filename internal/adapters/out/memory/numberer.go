package memory

import (
	"context"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/metrics"
)

const backend = "memory"

// Numberer keeps one counter per business date in process memory. Numbers are
// unique only within the process.
type Numberer struct {
	mu       sync.Mutex
	counters map[kernel.BusinessDate]int
	metrics  *metrics.Metrics
}

func NewNumberer(m *metrics.Metrics) *Numberer {
	return &Numberer{counters: make(map[kernel.BusinessDate]int), metrics: m}
}

func (n *Numberer) Next(_ context.Context, date kernel.BusinessDate) (order.Number, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	seq := n.counters[date] + 1
	number, err := order.NewNumber(date, seq)
	if err != nil {
		return order.Number{}, errs.NewNumberingUnavailableError(date.Compact(), err)
	}

	n.counters[date] = seq
	n.metrics.NumberIssued(backend)
	return number, nil
}

func (n *Numberer) PruneBefore(_ context.Context, cutoff kernel.BusinessDate) (int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	var pruned int64
	for date := range n.counters {
		if date.Time().Before(cutoff.Time()) {
			delete(n.counters, date)
			pruned++
		}
	}
	return pruned, nil
}
