package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// StockLedger exposes reserve/release/commit operations over per-product
// stock. Available stock is on-hand minus all active reservations and never
// goes negative.
//
// Reserve and Commit are idempotent per (productID, orderID) pair so retries
// after transient failures are safe: Reserve sets the reservation to the
// requested total rather than incrementing it.
type StockLedger interface {
	// Reserve holds quantity units of a product for an order. Fails with an
	// InsufficientStockError when available stock does not cover the request;
	// the caller treats this as recoverable.
	Reserve(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error

	// Release returns up to quantity reserved units back to available stock.
	Release(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error

	// Commit converts an order's reservation of a product into a permanent
	// stock decrement.
	Commit(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error

	// ReleaseAll releases every outstanding reservation held by an order.
	// Used on cancellation.
	ReleaseAll(ctx context.Context, orderID kernel.UUID) error

	// CommitAll commits every outstanding reservation held by an order.
	// Used on shipment.
	CommitAll(ctx context.Context, orderID kernel.UUID) error
}
