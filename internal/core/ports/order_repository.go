package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Writes are optimistic: Update and Delete compare the aggregate's Version with
// the stored one and fail with errs.ErrConcurrentModification when another
// writer committed in between. Repositories never retry on their own.
type OrderRepository interface {
	// Add persists a new order together with its lines and payments.
	// The stored version becomes 1.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the aggregate if the stored version still equals
	// aggregate.Version(), then increments it.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes the order, its lines and its payments under the same
	// version check as Update.
	Delete(ctx context.Context, aggregate *order.Order) error

	// Get loads an order and its version token. Unknown ids yield errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// OrderFilter narrows ListOrders. Zero fields do not filter.
type OrderFilter struct {
	Status *order.Status
	From   *time.Time
	To     *time.Time
}

// OrderReader is the read side used by queries.
type OrderReader interface {
	// GetOrder returns errs.ErrObjectNotFound for unknown ids.
	GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListOrders returns matching orders, newest first by creation time.
	ListOrders(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
