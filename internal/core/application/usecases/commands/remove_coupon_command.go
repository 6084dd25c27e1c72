package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRemoveCouponCommandIsNotConstructed = errors.New(
	"RemoveCouponCommand must be created via NewRemoveCouponCommand constructor",
)

// RemoveCouponCommand represents a request to remove the coupon applied to an
// order.
type RemoveCouponCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCouponCommand creates a command to remove an order's coupon.
func NewRemoveCouponCommand(orderID kernel.UUID) (RemoveCouponCommand, error) {
	couponCommand := RemoveCouponCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := couponCommand.setOrderID(orderID); err != nil {
		return RemoveCouponCommand{}, err
	}

	return couponCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCouponCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCouponCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RemoveCouponCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RemoveCouponCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
