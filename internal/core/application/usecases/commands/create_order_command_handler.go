package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Opens the order in Pending status and attaches the fraud verification gate
// built from the checkout risk assessment.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), userID, 25, false)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Creates the order, attaches its verification record, and stores both with
// the resulting events in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.UserID())
	if err != nil {
		return err
	}

	verification, err := order.NewVerification(
		kernel.NewUUID(),
		cmd.OrderID(),
		order.VerificationTypeAutomatic,
		cmd.RiskScore(),
		cmd.RequiresManualReview(),
	)
	if err != nil {
		return err
	}
	if err = aggregate.AttachVerification(verification); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Outbox().Publish(ctx, aggregate.PendingEvents()); err != nil {
		return err
	}
	aggregate.ClearPendingEvents()

	return uow.Commit(ctx)
}
