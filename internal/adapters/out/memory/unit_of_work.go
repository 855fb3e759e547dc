package memory

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

var ErrNoTransaction = errors.New("unit of work has no active transaction")

type opKind int

const (
	opAdd opKind = iota + 1
	opUpdate
	opDelete
)

type stagedOp struct {
	kind      opKind
	aggregate *order.Order
	expected  int64
	state     *order.Order
}

type UnitOfWorkFactory struct {
	store *OrderStore
}

func NewUnitOfWorkFactory(store *OrderStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes and applies them atomically on Commit after
// re-checking every expected version.
type UnitOfWork struct {
	store  *OrderStore
	active bool
	staged []stagedOp
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	defer u.reset()

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, op := range u.staged {
		id := op.aggregate.ID()
		switch op.kind {
		case opAdd:
			if _, exists := u.store.orders[id]; exists {
				return errs.NewValueIsInvalidError("order already exists")
			}
		case opUpdate, opDelete:
			if err := u.store.checkVersion(id, op.expected); err != nil {
				return err
			}
		}
	}

	for _, op := range u.staged {
		id := op.aggregate.ID()
		switch op.kind {
		case opAdd, opUpdate:
			next := op.expected + 1
			op.state.MarkCommitted(next)
			u.store.orders[id] = op.state
			op.aggregate.MarkCommitted(next)
		case opDelete:
			delete(u.store.orders, id)
		}
	}

	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.reset()
	return nil
}

func (u *UnitOfWork) reset() {
	u.active = false
	u.staged = nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return r.stage(ctx, opAdd, aggregate)
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return r.stage(ctx, opUpdate, aggregate)
}

func (r *orderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	return r.stage(ctx, opDelete, aggregate)
}

// Get sees committed state only; staged writes of the same unit of work are
// not visible.
func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.uow.store.get(id)
}

func (r *orderRepository) stage(_ context.Context, kind opKind, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrNoTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	op := stagedOp{kind: kind, aggregate: aggregate, expected: aggregate.Version()}
	if kind == opAdd {
		op.expected = 0
	}

	// Fail early, like a versioned UPDATE would; Commit checks again.
	r.uow.store.mu.RLock()
	var err error
	switch kind {
	case opAdd:
		if _, exists := r.uow.store.orders[aggregate.ID()]; exists {
			err = errs.NewValueIsInvalidError("order already exists")
		}
	case opUpdate, opDelete:
		err = r.uow.store.checkVersion(aggregate.ID(), op.expected)
	}
	r.uow.store.mu.RUnlock()
	if err != nil {
		return err
	}

	if kind != opDelete {
		state, cloneErr := clone(aggregate)
		if cloneErr != nil {
			return cloneErr
		}
		op.state = state
	}

	r.uow.staged = append(r.uow.staged, op)
	return nil
}
