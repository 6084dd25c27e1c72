package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrApproveVerificationCommandIsNotConstructed = errors.New(
	"ApproveVerificationCommand must be created via NewApproveVerificationCommand constructor",
)

// ApproveVerificationCommand represents a manual reviewer resolving an
// order's fraud gate to Verified.
type ApproveVerificationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveVerificationCommand creates a command to approve an order's
// verification.
func NewApproveVerificationCommand(orderID kernel.UUID) (ApproveVerificationCommand, error) {
	verificationCommand := ApproveVerificationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := verificationCommand.setOrderID(orderID); err != nil {
		return ApproveVerificationCommand{}, err
	}

	return verificationCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveVerificationCommand) Validate() error {
	return c.guard.Validate(ErrApproveVerificationCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ApproveVerificationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ApproveVerificationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
