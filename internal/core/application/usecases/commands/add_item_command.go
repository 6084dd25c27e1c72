package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddItemCommandIsNotConstructed = errors.New(
	"AddItemCommand must be created via NewAddItemCommand constructor",
)

// AddItemCommand represents a request to add a product line to an order.
// The unit price is the snapshot taken by the caller at add time.
type AddItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewAddItemCommand creates a command to add an item to an order.
// Validates identifiers, a positive quantity, and a strictly positive price.
func NewAddItemCommand(
	orderID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
) (AddItemCommand, error) {
	itemCommand := AddItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemCommand.setOrderID(orderID),
		itemCommand.setProductID(productID),
		itemCommand.setQuantity(quantity),
		itemCommand.setUnitPrice(unitPrice),
	); err != nil {
		return AddItemCommand{}, err
	}

	return itemCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemCommand) Validate() error {
	return c.guard.Validate(ErrAddItemCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AddItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the product to add.
func (c AddItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of units to add.
func (c AddItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the per-unit price snapshot.
func (c AddItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

func (c *AddItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *AddItemCommand) setUnitPrice(unitPrice kernel.Money) error {
	if !unitPrice.GreaterThan(kernel.ZeroMoney()) {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%s is not greater than 0", unitPrice.String()))
	}

	c.unitPrice = unitPrice
	return nil
}
