package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// ChangePaymentStatusCommandHandler applies payment webhook transitions to an
// order. A Paid result on a still-Pending order runs the approval policy:
// verified or low-risk orders auto-confirm, the rest go OnHold for manual
// review.
type ChangePaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.ApprovalPolicy
}

// NewChangePaymentStatusCommandHandler creates a handler for payment status
// transitions with the given approval policy.
func NewChangePaymentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy order.ApprovalPolicy,
) ChangePaymentStatusCommandHandler {
	return ChangePaymentStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the payment status change command.
func (h *ChangePaymentStatusCommandHandler) Handle(ctx context.Context, cmd ChangePaymentStatusCommand) error {
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

	if err = aggregate.ChangePaymentStatus(cmd.PaymentStatus(), h.policy); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
