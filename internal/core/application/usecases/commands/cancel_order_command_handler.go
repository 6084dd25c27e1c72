package commands

import (
	"context"
)

// CancelOrderCommandHandler cancels an order and releases all of its
// outstanding stock reservations in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory StockUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = aggregate.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = uow.StockLedger().ReleaseAll(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
