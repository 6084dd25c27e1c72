package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"marketplace/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem constructors.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is a line item owned by an Order. The unit price is a snapshot taken
// when the item is added and is never re-read from the product catalog.
//
// Invariants:
//   - Quantity is a positive integer
//   - UnitPrice is strictly positive
//   - TotalPrice is always Quantity × UnitPrice
//
// Items are mutable only through the owning Order while the order is in a
// mutable state; once the order moves past Confirmed they are frozen.
type Item struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a validated line item. The unit price must be strictly
// positive and the quantity a positive integer.
func NewItem(id kernel.UUID, productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Item, error) {
	item := &Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs a line item from persistent storage.
// It applies the same validation as NewItem.
func RestoreItem(id kernel.UUID, productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Item, error) {
	return NewItem(id, productID, quantity, unitPrice)
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the product this line refers to.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units on this line.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price snapshot taken at add time.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice returns Quantity × UnitPrice.
func (i *Item) TotalPrice() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if !unitPrice.GreaterThan(kernel.ZeroMoney()) {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%s is not greater than 0", unitPrice.String()))
	}
	i.unitPrice = unitPrice
	return nil
}
