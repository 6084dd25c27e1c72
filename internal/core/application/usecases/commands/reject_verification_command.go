package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRejectVerificationCommandIsNotConstructed = errors.New(
	"RejectVerificationCommand must be created via NewRejectVerificationCommand constructor",
)

// RejectVerificationCommand represents a manual reviewer resolving an order's
// fraud gate to Rejected.
type RejectVerificationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectVerificationCommand creates a command to reject an order's
// verification.
func NewRejectVerificationCommand(orderID kernel.UUID) (RejectVerificationCommand, error) {
	verificationCommand := RejectVerificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := verificationCommand.setOrderID(orderID); err != nil {
		return RejectVerificationCommand{}, err
	}

	return verificationCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectVerificationCommand) Validate() error {
	return c.guard.Validate(ErrRejectVerificationCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RejectVerificationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RejectVerificationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
