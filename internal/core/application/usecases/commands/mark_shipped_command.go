package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrMarkShippedCommandIsNotConstructed = errors.New(
	"MarkShippedCommand must be created via NewMarkShippedCommand constructor",
)

// MarkShippedCommand represents the shipping subsystem reporting that an
// order left the warehouse.
type MarkShippedCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	shippedAt time.Time

	guard guard.ConstructorGuard
}

// NewMarkShippedCommand creates a command to mark an order shipped.
func NewMarkShippedCommand(orderID kernel.UUID, shippedAt time.Time) (MarkShippedCommand, error) {
	shippedCommand := MarkShippedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shippedCommand.setOrderID(orderID),
		shippedCommand.setShippedAt(shippedAt),
	); err != nil {
		return MarkShippedCommand{}, err
	}

	return shippedCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShippedCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c MarkShippedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShippedAt returns when the order shipped.
func (c MarkShippedCommand) ShippedAt() time.Time {
	return c.shippedAt
}

func (c *MarkShippedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkShippedCommand) setShippedAt(shippedAt time.Time) error {
	if shippedAt.IsZero() {
		return errs.NewValueIsRequiredError("shippedAt")
	}

	c.shippedAt = shippedAt
	return nil
}
