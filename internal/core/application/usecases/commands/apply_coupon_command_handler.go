package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// ApplyCouponCommandHandler validates a coupon through the discount resolver
// and applies the resulting discount to the order. A DiscountRejectedError
// from the resolver is surfaced to the caller with the specific reason.
type ApplyCouponCommandHandler struct {
	uowFactory       OrderUoWFactory
	discountResolver ports.DiscountResolver
}

// NewApplyCouponCommandHandler creates a handler for coupon application.
func NewApplyCouponCommandHandler(
	uowFactory OrderUoWFactory,
	discountResolver ports.DiscountResolver,
) ApplyCouponCommandHandler {
	return ApplyCouponCommandHandler{
		uowFactory:       uowFactory,
		discountResolver: discountResolver,
	}
}

// Handle processes the apply-coupon command.
func (h *ApplyCouponCommandHandler) Handle(ctx context.Context, cmd ApplyCouponCommand) error {
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

	discount, err := h.discountResolver.ValidateCoupon(
		ctx, cmd.CouponID(), aggregate.SubTotal(), aggregate.UserID())
	if err != nil {
		return err
	}

	if err = aggregate.ApplyCoupon(cmd.CouponID(), discount); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
