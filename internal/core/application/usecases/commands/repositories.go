// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SplitRepoFactory provides access to the split repository within a transaction.
	SplitRepoFactory interface {
		SplitRepository() ports.SplitRepository
	}

	// StockLedgerFactory provides access to the stock ledger within a transaction.
	StockLedgerFactory interface {
		StockLedger() ports.StockLedger
	}

	// OutboxFactory provides access to the event outbox within a transaction.
	OutboxFactory interface {
		Outbox() ports.EventOutbox
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands modify the order aggregate without stock side effects.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StockUoW manages transactions for operations that touch both the order
	// aggregate and its stock reservations. The ledger calls ride the same
	// transaction, so the mutation and its stock side effect commit or roll
	// back as one unit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   ledger := uow.StockLedger()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	StockUoW interface {
		TxManager
		OrderRepoFactory
		StockLedgerFactory
		OutboxFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// SplitUoW manages transactions for the order split operation, which
	// writes the original order, the new split orders, the split record, and
	// the moved stock reservations together.
	SplitUoW interface {
		TxManager
		OrderRepoFactory
		SplitRepoFactory
		StockLedgerFactory
		OutboxFactory
	}

	// SplitUoWFactory creates new split unit of work instances.
	SplitUoWFactory interface {
		Create() SplitUoW
	}
)

// saveOrder persists the mutated aggregate and drains its pending events into
// the transactional outbox.
func saveOrder(ctx context.Context, repo ports.OrderRepository, outbox ports.EventOutbox, aggregate *order.Order) error {
	if err := repo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err := outbox.Publish(ctx, aggregate.PendingEvents()); err != nil {
		return err
	}
	aggregate.ClearPendingEvents()
	return nil
}
