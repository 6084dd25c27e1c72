package commands

import (
	"context"
)

// MarkShippedCommandHandler marks an order shipped and commits all of its
// stock reservations into permanent decrements in the same transaction.
type MarkShippedCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewMarkShippedCommandHandler creates a handler for shipment notifications.
func NewMarkShippedCommandHandler(uowFactory StockUoWFactory) MarkShippedCommandHandler {
	return MarkShippedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-shipped command.
func (h *MarkShippedCommandHandler) Handle(ctx context.Context, cmd MarkShippedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkShipped(cmd.ShippedAt()); err != nil {
		return err
	}

	if err = uow.StockLedger().CommitAll(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
