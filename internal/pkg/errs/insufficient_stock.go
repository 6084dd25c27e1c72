package errs

import (
	"errors"
	"fmt"
)

// ErrInsufficientStock is the sentinel error for all InsufficientStockError
// instances. The error is recoverable: the caller may retry with a reduced
// quantity or abort the checkout.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError indicates that a stock reservation failed because the
// available quantity (on-hand minus other active reservations) is less than
// the requested quantity.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError for the given product.
func NewInsufficientStockError(productID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s, requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
