package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and hands out collaborators bound to the
// active transaction, so an order mutation, its stock side effects, and its
// outbox events commit or roll back as one unit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// SplitRepository returns a SplitRepository bound to the current transaction.
	SplitRepository() SplitRepository

	// StockLedger returns a StockLedger bound to the current transaction.
	StockLedger() StockLedger

	// Outbox returns an EventOutbox bound to the current transaction.
	Outbox() EventOutbox
}
