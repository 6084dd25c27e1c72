package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPutOnHoldCommandIsNotConstructed = errors.New(
	"PutOnHoldCommand must be created via NewPutOnHoldCommand constructor",
)

// PutOnHoldCommand represents a manual intervention suspending an order.
type PutOnHoldCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewPutOnHoldCommand creates a command to put an order on hold.
// The reason is required for the audit trail.
func NewPutOnHoldCommand(orderID kernel.UUID, reason string) (PutOnHoldCommand, error) {
	holdCommand := PutOnHoldCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		holdCommand.setOrderID(orderID),
		holdCommand.setReason(reason),
	); err != nil {
		return PutOnHoldCommand{}, err
	}

	return holdCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PutOnHoldCommand) Validate() error {
	return c.guard.Validate(ErrPutOnHoldCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c PutOnHoldCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the order is being held.
func (c PutOnHoldCommand) Reason() string {
	return c.reason
}

func (c *PutOnHoldCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PutOnHoldCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
