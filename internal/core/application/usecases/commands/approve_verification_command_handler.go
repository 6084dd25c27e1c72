package commands

import (
	"context"
)

// ApproveVerificationCommandHandler resolves an order's fraud gate to
// Verified; a paid order held for review advances to Confirmed.
type ApproveVerificationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApproveVerificationCommandHandler creates a handler for verification
// approvals.
func NewApproveVerificationCommandHandler(uowFactory OrderUoWFactory) ApproveVerificationCommandHandler {
	return ApproveVerificationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approve-verification command.
func (h *ApproveVerificationCommandHandler) Handle(ctx context.Context, cmd ApproveVerificationCommand) error {
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

	if err = aggregate.ApproveVerification(); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
