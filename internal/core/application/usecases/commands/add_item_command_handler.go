package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// AddItemCommandHandler adds a line item to an order and reserves its stock
// in the same transaction. An InsufficientStockError rolls back the item
// addition, leaving the order exactly as before.
type AddItemCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewAddItemCommandHandler creates a handler for add-item operations.
func NewAddItemCommandHandler(uowFactory StockUoWFactory) AddItemCommandHandler {
	return AddItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-item command.
// The ledger reservation is set to the merged line quantity, keeping Reserve
// idempotent per (productID, orderID).
func (h *AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) error {
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

	item, err := aggregate.AddItem(kernel.NewUUID(), cmd.ProductID(), cmd.Quantity(), cmd.UnitPrice())
	if err != nil {
		return err
	}

	if err = uow.StockLedger().Reserve(ctx, item.ProductID(), item.Quantity(), aggregate.ID()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
