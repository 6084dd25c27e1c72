package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRefundOrderCommandIsNotConstructed = errors.New(
	"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
)

// RefundOrderCommand represents a request to return part or all of an
// order's captured amount.
type RefundOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewRefundOrderCommand creates a command to refund an order.
func NewRefundOrderCommand(orderID kernel.UUID, amount kernel.Money) (RefundOrderCommand, error) {
	refundCommand := RefundOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		refundCommand.setOrderID(orderID),
		refundCommand.setAmount(amount),
	); err != nil {
		return RefundOrderCommand{}, err
	}

	return refundCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c RefundOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the amount to refund.
func (c RefundOrderCommand) Amount() kernel.Money {
	return c.amount
}

func (c *RefundOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RefundOrderCommand) setAmount(amount kernel.Money) error {
	if !amount.GreaterThan(kernel.ZeroMoney()) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount.String()))
	}

	c.amount = amount
	return nil
}
