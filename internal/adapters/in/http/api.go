// Package http exposes the order operations over a REST API built on echo.
// Handlers translate between JSON payloads and application commands; all
// business rules stay behind the command handlers.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the payload for opening a new order.
type CreateOrderRequest struct {
	UserID               string `json:"user_id"`
	RiskScore            int    `json:"risk_score"`
	RequiresManualReview bool   `json:"requires_manual_review"`
}

// CreateOrderResponse returns the identifier of the created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// AddItemRequest is the payload for adding a line item.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// UpdateItemQuantityRequest is the payload for changing a line quantity.
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest is the payload for applying a coupon.
type ApplyCouponRequest struct {
	CouponID string `json:"coupon_id"`
}

// ApplyGiftCardRequest is the payload for applying gift card balance.
type ApplyGiftCardRequest struct {
	Amount string `json:"amount"`
}

// ChangePaymentStatusRequest is the payload for payment webhook updates.
type ChangePaymentStatusRequest struct {
	Status string `json:"status"`
}

// ReasonRequest is the payload for operations that only need a reason.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// ShipRequest is the payload for marking an order shipped.
type ShipRequest struct {
	ShippedAt time.Time `json:"shipped_at"`
}

// DeliverRequest is the payload for marking an order delivered.
type DeliverRequest struct {
	DeliveredAt time.Time `json:"delivered_at"`
}

// RefundRequest is the payload for refunding an order.
type RefundRequest struct {
	Amount string `json:"amount"`
}

// SplitOrderRequest is the payload for splitting an order. Assignments map
// product ids to fulfillment group keys; unassigned products stay on the
// original order.
type SplitOrderRequest struct {
	Reason      string            `json:"reason"`
	Assignments map[string]string `json:"assignments"`
}

// OrderResponse is the JSON shape of a single order read model.
type OrderResponse struct {
	ID               string              `json:"id"`
	UserID           string              `json:"user_id"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"payment_status"`
	SubTotal         string              `json:"sub_total"`
	ShippingCost     string              `json:"shipping_cost"`
	Tax              string              `json:"tax"`
	CouponDiscount   string              `json:"coupon_discount"`
	GiftCardDiscount string              `json:"gift_card_discount"`
	TotalAmount      string              `json:"total_amount"`
	RefundedAmount   string              `json:"refunded_amount"`
	Version          int                 `json:"version"`
	Items            []OrderItemResponse `json:"items"`
}

// OrderItemResponse is the JSON shape of one order line.
type OrderItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// ActiveOrderResponse is the JSON shape of one in-flight order.
type ActiveOrderResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   string    `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// respondError maps domain errors to HTTP status codes: invalid input 400,
// missing aggregates 404, state and concurrency conflicts 409, stock and
// discount rejections 422.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	var (
		valueRequired   *errs.ValueIsRequiredError
		valueInvalid    *errs.ValueIsInvalidError
		valueOutOfRange *errs.ValueIsOutOfRangeError
		notFound        *errs.ObjectNotFoundError
		invalidState    *errs.InvalidStateError
		conflict        *errs.ConcurrencyConflictError
		insufficient    *errs.InsufficientStockError
		rejected        *errs.DiscountRejectedError
	)

	switch {
	case errors.As(err, &valueRequired),
		errors.As(err, &valueInvalid),
		errors.As(err, &valueOutOfRange):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &invalidState), errors.As(err, &conflict):
		status = http.StatusConflict
	case errors.As(err, &insufficient), errors.As(err, &rejected):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
