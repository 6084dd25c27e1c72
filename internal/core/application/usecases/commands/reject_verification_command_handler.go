package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// RejectVerificationCommandHandler resolves an order's fraud gate to
// Rejected. A still-Pending order is cancelled immediately, which also
// releases its stock reservations.
type RejectVerificationCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewRejectVerificationCommandHandler creates a handler for verification
// rejections.
func NewRejectVerificationCommandHandler(uowFactory StockUoWFactory) RejectVerificationCommandHandler {
	return RejectVerificationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reject-verification command.
func (h *RejectVerificationCommandHandler) Handle(ctx context.Context, cmd RejectVerificationCommand) error {
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

	if err = aggregate.RejectVerification(); err != nil {
		return err
	}

	if aggregate.Status() == order.StatusCancelled {
		if err = uow.StockLedger().ReleaseAll(ctx, aggregate.ID()); err != nil {
			return err
		}
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
