package commands

import (
	"context"
)

// RefundOrderCommandHandler refunds part or all of an order's captured
// amount. Partial refunds keep the lifecycle status; a refund exhausting the
// total marks the order Refunded.
type RefundOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRefundOrderCommandHandler creates a handler for refunds.
func NewRefundOrderCommandHandler(uowFactory OrderUoWFactory) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refund command.
func (h *RefundOrderCommandHandler) Handle(ctx context.Context, cmd RefundOrderCommand) error {
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

	if err = aggregate.Refund(cmd.Amount()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
