package commands

import (
	"context"
)

// RemoveCouponCommandHandler removes the coupon applied to an order and
// recomputes its totals.
type RemoveCouponCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRemoveCouponCommandHandler creates a handler for coupon removal.
func NewRemoveCouponCommandHandler(uowFactory OrderUoWFactory) RemoveCouponCommandHandler {
	return RemoveCouponCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove-coupon command.
func (h *RemoveCouponCommandHandler) Handle(ctx context.Context, cmd RemoveCouponCommand) error {
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

	if err = aggregate.RemoveCoupon(); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
