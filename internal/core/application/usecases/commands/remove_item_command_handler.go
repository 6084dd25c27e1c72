package commands

import (
	"context"
)

// RemoveItemCommandHandler removes a line item and releases its stock
// reservation in the same transaction.
type RemoveItemCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewRemoveItemCommandHandler creates a handler for remove-item operations.
func NewRemoveItemCommandHandler(uowFactory StockUoWFactory) RemoveItemCommandHandler {
	return RemoveItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove-item command.
func (h *RemoveItemCommandHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
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

	removed, err := aggregate.RemoveItem(cmd.ItemID())
	if err != nil {
		return err
	}

	if err = uow.StockLedger().Release(ctx, removed.ProductID(), removed.Quantity(), aggregate.ID()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
