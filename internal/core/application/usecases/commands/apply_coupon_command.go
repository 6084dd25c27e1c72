package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrApplyCouponCommandIsNotConstructed = errors.New(
	"ApplyCouponCommand must be created via NewApplyCouponCommand constructor",
)

// ApplyCouponCommand represents a request to apply a coupon to an order.
// Eligibility and pricing are delegated to the discount resolver.
type ApplyCouponCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	couponID kernel.UUID

	guard guard.ConstructorGuard
}

// NewApplyCouponCommand creates a command to apply a coupon.
func NewApplyCouponCommand(orderID kernel.UUID, couponID kernel.UUID) (ApplyCouponCommand, error) {
	couponCommand := ApplyCouponCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		couponCommand.setOrderID(orderID),
		couponCommand.setCouponID(couponID),
	); err != nil {
		return ApplyCouponCommand{}, err
	}

	return couponCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyCouponCommand) Validate() error {
	return c.guard.Validate(ErrApplyCouponCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ApplyCouponCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CouponID returns the coupon to apply.
func (c ApplyCouponCommand) CouponID() kernel.UUID {
	return c.couponID
}

func (c *ApplyCouponCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyCouponCommand) setCouponID(couponID kernel.UUID) error {
	if err := couponID.Validate(); err != nil {
		return err
	}

	c.couponID = couponID
	return nil
}
