package commands

import (
	"context"
)

// UpdateItemQuantityCommandHandler changes a line item's quantity, adjusting
// the stock reservation by the delta in the same transaction.
type UpdateItemQuantityCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewUpdateItemQuantityCommandHandler creates a handler for quantity updates.
func NewUpdateItemQuantityCommandHandler(uowFactory StockUoWFactory) UpdateItemQuantityCommandHandler {
	return UpdateItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the quantity update command.
// Increases re-reserve the full new quantity (Reserve is idempotent per
// product/order pair); decreases release the freed units.
func (h *UpdateItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateItemQuantityCommand) error {
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

	item, oldQuantity, err := aggregate.UpdateItemQuantity(cmd.ItemID(), cmd.Quantity())
	if err != nil {
		return err
	}

	ledger := uow.StockLedger()
	switch {
	case item.Quantity() > oldQuantity:
		err = ledger.Reserve(ctx, item.ProductID(), item.Quantity(), aggregate.ID())
	case item.Quantity() < oldQuantity:
		err = ledger.Release(ctx, item.ProductID(), oldQuantity-item.Quantity(), aggregate.ID())
	}
	if err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
