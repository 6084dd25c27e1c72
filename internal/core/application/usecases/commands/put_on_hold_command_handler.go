package commands

import (
	"context"
)

// PutOnHoldCommandHandler suspends an order, remembering the prior status for
// a later resume.
type PutOnHoldCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPutOnHoldCommandHandler creates a handler for hold operations.
func NewPutOnHoldCommandHandler(uowFactory OrderUoWFactory) PutOnHoldCommandHandler {
	return PutOnHoldCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the put-on-hold command.
func (h *PutOnHoldCommandHandler) Handle(ctx context.Context, cmd PutOnHoldCommand) error {
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

	if err = aggregate.PutOnHold(cmd.Reason()); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, uow.Outbox(), aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
