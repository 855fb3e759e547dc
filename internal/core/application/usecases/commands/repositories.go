// Package commands contains business operations that modify order state.
// Every command is built through a validating constructor and executed by its
// handler as load -> mutate -> persist -> commit -> audit inside a unit of work.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// OrderUoW is the slice of ports.UnitOfWork the handlers need: a transaction
// and the order repository bound to it. Handlers always pair Begin with a
// deferred Rollback, which is a no-op after Commit.
type OrderUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() ports.OrderRepository
}

// OrderUoWFactory hands out a fresh OrderUoW per command.
type OrderUoWFactory interface {
	Create() OrderUoW
}
