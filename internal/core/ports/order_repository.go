package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes are guarded by the aggregate's optimistic concurrency version:
// Update fails with a ConcurrencyConflictError when the stored version no
// longer matches the loaded one.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, conditioned on
	// the version the aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its line items and verification record.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetPendingOlderThan retrieves orders still in Pending status created
	// before the given cutoff. Used by the stale-order cleanup job.
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}

// SplitRepository defines the persistence contract for order split records.
type SplitRepository interface {
	// Add persists a new split record.
	Add(ctx context.Context, split *order.Split) error

	// GetByOriginalOrderID retrieves the split record of an order that was
	// split, or an ObjectNotFoundError when the order was never split.
	GetByOriginalOrderID(ctx context.Context, originalOrderID kernel.UUID) (*order.Split, error)
}
