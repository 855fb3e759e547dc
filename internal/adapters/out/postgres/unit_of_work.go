// Package postgres provides the GORM-based Unit of Work for order commands.
// A unit of work wraps one database transaction; repositories obtained from it
// run inside that transaction once Begin has been called.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	repo := uow.OrderRepository()
//	o, err := repo.Get(ctx, id)
//	// ... mutate o
//	if err := repo.Update(ctx, o); err != nil {
//	    return err // errs.ErrConcurrentModification when another writer won
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction and is not shared between goroutines
//   - Conflicting writers are detected by the orders.version column, not by locks
//   - Keep transactions short: load, mutate, write, commit
package postgres

import (
	"context"

	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work. Each call is isolated from the others.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		tracked: make([]*order.Order, 0),
	}
}

// GormUnitOfWork coordinates one transaction and records the orders written in it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []*order.Order
}

// Begin starts the transaction. Calling it twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. The unit of work cannot be reused afterwards.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After Commit it returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns a repository bound to the active transaction, or to
// the pool when Begin has not been called.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate is called by repositories for every order they write.
func (uow *GormUnitOfWork) TrackAggregate(aggregate *order.Order) {
	uow.tracked = append(uow.tracked, aggregate)
}

// Tracked returns the orders written through this unit of work.
func (uow *GormUnitOfWork) Tracked() []*order.Order {
	return uow.tracked
}
