// Package memory holds process-local adapters for development and tests. The
// order store keeps the same optimistic versioning contract as Postgres:
// writes carry the version they were loaded at and conflicting commits fail.
package memory

import (
	"context"
	"sort"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// OrderStore is shared by every unit of work and reader created from it.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[kernel.UUID]*order.Order)}
}

// clone detaches a stored order from the caller's copy.
func clone(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(o.Snapshot())
}

func (s *OrderStore) get(id kernel.UUID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return clone(stored)
}

// checkVersion must be called with s.mu held.
func (s *OrderStore) checkVersion(id kernel.UUID, expected int64) error {
	stored, ok := s.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if stored.Version() != expected {
		return errs.NewConcurrentModificationError(id.String(), expected)
	}
	return nil
}

func (s *OrderStore) GetOrder(_ context.Context, id kernel.UUID) (*order.Order, error) {
	return s.get(id)
}

func (s *OrderStore) ListOrders(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*order.Order, 0, len(s.orders))
	for _, stored := range s.orders {
		if filter.Status != nil && stored.Status() != *filter.Status {
			continue
		}
		if filter.From != nil && stored.CreatedAt().Before(*filter.From) {
			continue
		}
		if filter.To != nil && !stored.CreatedAt().Before(*filter.To) {
			continue
		}
		o, err := clone(stored)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[i].Number().String() > out[j].Number().String()
	})
	return out, nil
}
