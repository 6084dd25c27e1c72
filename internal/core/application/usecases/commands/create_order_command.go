package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to open a new order at checkout.
// Carries the fraud engine's risk assessment so the verification gate is
// created together with the order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, userID, 25, false)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	userID               kernel.UUID
	riskScore            int
	requiresManualReview bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new order.
// Validates identifiers and that the risk score is within [0, 100].
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	riskScore int,
	requiresManualReview bool,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		requiresManualReview: requiresManualReview,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setUserID(userID),
		orderCommand.setRiskScore(riskScore),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the customer placing the order.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// RiskScore returns the fraud engine's risk score in [0, 100].
func (c CreateOrderCommand) RiskScore() int {
	return c.riskScore
}

// RequiresManualReview reports whether the score demands manual review.
func (c CreateOrderCommand) RequiresManualReview() bool {
	return c.requiresManualReview
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setRiskScore(riskScore int) error {
	if riskScore < 0 || riskScore > 100 {
		return errs.NewValueIsOutOfRangeError("riskScore", riskScore, 0, 100)
	}

	c.riskScore = riskScore
	return nil
}
