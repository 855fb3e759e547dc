package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command execution.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction around one order command: the version read by
// Get is the one Update checks, and nothing becomes visible before Commit.
// Rollback after a successful Commit is a harmless no-op for callers that
// defer it.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the open transaction.
	OrderRepository() OrderRepository
}
