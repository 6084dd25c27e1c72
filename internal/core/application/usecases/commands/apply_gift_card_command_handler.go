package commands

import (
	"context"
)

// ApplyGiftCardCommandHandler applies a gift card discount to an order.
type ApplyGiftCardCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApplyGiftCardCommandHandler creates a handler for gift card application.
func NewApplyGiftCardCommandHandler(uowFactory OrderUoWFactory) ApplyGiftCardCommandHandler {
	return ApplyGiftCardCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the apply-gift-card command.
func (h *ApplyGiftCardCommandHandler) Handle(ctx context.Context, cmd ApplyGiftCardCommand) error {
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

	if _, err = aggregate.ApplyGiftCardDiscount(cmd.Amount()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
