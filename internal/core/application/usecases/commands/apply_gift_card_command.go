package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrApplyGiftCardCommandIsNotConstructed = errors.New(
	"ApplyGiftCardCommand must be created via NewApplyGiftCardCommand constructor",
)

// ApplyGiftCardCommand represents a request to apply a gift card amount to an
// order. The aggregate caps the effective discount at the remaining order
// value.
type ApplyGiftCardCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

// NewApplyGiftCardCommand creates a command to apply a gift card amount.
func NewApplyGiftCardCommand(orderID kernel.UUID, amount kernel.Money) (ApplyGiftCardCommand, error) {
	giftCardCommand := ApplyGiftCardCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		giftCardCommand.setOrderID(orderID),
		giftCardCommand.setAmount(amount),
	); err != nil {
		return ApplyGiftCardCommand{}, err
	}

	return giftCardCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyGiftCardCommand) Validate() error {
	return c.guard.Validate(ErrApplyGiftCardCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c ApplyGiftCardCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the gift card amount to apply.
func (c ApplyGiftCardCommand) Amount() kernel.Money {
	return c.amount
}

func (c *ApplyGiftCardCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyGiftCardCommand) setAmount(amount kernel.Money) error {
	if !amount.GreaterThan(kernel.ZeroMoney()) {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount.String()))
	}

	c.amount = amount
	return nil
}
