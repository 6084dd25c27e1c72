package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents the shipping subsystem reporting that an
// order reached the customer.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	deliveredAt time.Time

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to mark an order delivered.
func NewMarkDeliveredCommand(orderID kernel.UUID, deliveredAt time.Time) (MarkDeliveredCommand, error) {
	deliveredCommand := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveredCommand.setOrderID(orderID),
		deliveredCommand.setDeliveredAt(deliveredAt),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return deliveredCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveredAt returns when the order was delivered.
func (c MarkDeliveredCommand) DeliveredAt() time.Time {
	return c.deliveredAt
}

func (c *MarkDeliveredCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkDeliveredCommand) setDeliveredAt(deliveredAt time.Time) error {
	if deliveredAt.IsZero() {
		return errs.NewValueIsRequiredError("deliveredAt")
	}

	c.deliveredAt = deliveredAt
	return nil
}
