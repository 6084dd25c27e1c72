package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items for display.
// Read models bypass the aggregate and are served straight from SQL.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model for a single order. Monetary
// amounts are decimal strings; status fields carry their wire names.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	UserID           kernel.UUID
	Status           string
	PaymentStatus    string
	SubTotal         string
	ShippingCost     string
	Tax              string
	CouponDiscount   string
	GiftCardDiscount string
	TotalAmount      string
	RefundedAmount   string
	Version          int
	Items            []GetOrderItemResponse
}

// GetOrderItemResponse is the read model for one order line.
type GetOrderItemResponse struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	Quantity  int
	UnitPrice string
}
