package order

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event raised by the Order aggregate. Events accumulate on
// the aggregate during a command and are persisted to the outbox by the
// application layer inside the same transaction; consumers receive them with
// at-least-once semantics.
//
// Event payloads carry plain wire-friendly types (uuid.UUID, strings for
// monetary amounts) so they marshal to stable JSON without exposing domain
// internals.
type Event interface {
	// EventName returns the stable, dot-separated event type identifier.
	EventName() string

	// AggregateID returns the id of the order the event belongs to.
	AggregateID() uuid.UUID

	// OccurredOn returns when the event was raised.
	OccurredOn() time.Time
}

type eventBase struct {
	OrderID uuid.UUID `json:"order_id"`
	At      time.Time `json:"occurred_on"`
}

func newEventBase(orderID uuid.UUID) eventBase {
	return eventBase{OrderID: orderID, At: time.Now().UTC()}
}

func (e eventBase) AggregateID() uuid.UUID { return e.OrderID }
func (e eventBase) OccurredOn() time.Time  { return e.At }

// OrderCreated is raised once when a new order enters the system.
type OrderCreated struct {
	eventBase
	UserID      uuid.UUID `json:"user_id"`
	TotalAmount string    `json:"total_amount"`
}

func (OrderCreated) EventName() string { return "order.created" }

// OrderItemAdded is raised when a line item is appended or merged.
type OrderItemAdded struct {
	eventBase
	ItemID    uuid.UUID `json:"item_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
}

func (OrderItemAdded) EventName() string { return "order.item_added" }

// OrderItemRemoved is raised when a line item is removed.
type OrderItemRemoved struct {
	eventBase
	ItemID    uuid.UUID `json:"item_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (OrderItemRemoved) EventName() string { return "order.item_removed" }

// OrderItemUpdated is raised when a line item's quantity changes.
type OrderItemUpdated struct {
	eventBase
	ItemID      uuid.UUID `json:"item_id"`
	ProductID   uuid.UUID `json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
}

func (OrderItemUpdated) EventName() string { return "order.item_updated" }

// OrderCouponApplied is raised when a coupon discount is applied.
type OrderCouponApplied struct {
	eventBase
	CouponID uuid.UUID `json:"coupon_id"`
	Discount string    `json:"discount"`
}

func (OrderCouponApplied) EventName() string { return "order.coupon_applied" }

// OrderCouponRemoved is raised when the active coupon is removed.
type OrderCouponRemoved struct {
	eventBase
	CouponID uuid.UUID `json:"coupon_id"`
}

func (OrderCouponRemoved) EventName() string { return "order.coupon_removed" }

// OrderGiftCardDiscountApplied is raised when a gift card discount is applied.
type OrderGiftCardDiscountApplied struct {
	eventBase
	Amount string `json:"amount"`
}

func (OrderGiftCardDiscountApplied) EventName() string { return "order.gift_card_discount_applied" }

// OrderTotalsRecalculated is raised after every monetary mutation with the
// full recomputed breakdown.
type OrderTotalsRecalculated struct {
	eventBase
	SubTotal         string `json:"sub_total"`
	ShippingCost     string `json:"shipping_cost"`
	Tax              string `json:"tax"`
	CouponDiscount   string `json:"coupon_discount"`
	GiftCardDiscount string `json:"gift_card_discount"`
	TotalAmount      string `json:"total_amount"`
}

func (OrderTotalsRecalculated) EventName() string { return "order.totals_recalculated" }

// OrderPaymentStatusChanged is raised on every payment axis transition.
type OrderPaymentStatusChanged struct {
	eventBase
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func (OrderPaymentStatusChanged) EventName() string { return "order.payment_status_changed" }

// OrderPaymentMethodChanged is raised when the payment method is set or changed.
type OrderPaymentMethodChanged struct {
	eventBase
	PaymentMethod string `json:"payment_method"`
}

func (OrderPaymentMethodChanged) EventName() string { return "order.payment_method_changed" }

// OrderPutOnHold is raised when the order is placed on hold, either manually
// or because payment succeeded while the fraud gate demands manual review.
type OrderPutOnHold struct {
	eventBase
	Reason string `json:"reason"`
}

func (OrderPutOnHold) EventName() string { return "order.put_on_hold" }

// OrderResumed is raised when a held order returns to its prior state.
type OrderResumed struct {
	eventBase
	RestoredStatus string `json:"restored_status"`
}

func (OrderResumed) EventName() string { return "order.resumed" }

// OrderShipped is raised when the order ships and its stock reservations are
// committed to permanent decrements.
type OrderShipped struct {
	eventBase
	ShippedAt time.Time `json:"shipped_at"`
}

func (OrderShipped) EventName() string { return "order.shipped" }

// OrderDelivered is raised when the order reaches the customer.
type OrderDelivered struct {
	eventBase
	DeliveredAt time.Time `json:"delivered_at"`
}

func (OrderDelivered) EventName() string { return "order.delivered" }

// OrderCancelled is raised when the order is cancelled and its outstanding
// stock reservations are released.
type OrderCancelled struct {
	eventBase
	Reason string `json:"reason"`
}

func (OrderCancelled) EventName() string { return "order.cancelled" }

// OrderRefunded is raised for every refund; Full marks the refund that
// returned the remaining captured amount.
type OrderRefunded struct {
	eventBase
	Amount string `json:"amount"`
	Full   bool   `json:"full"`
}

func (OrderRefunded) EventName() string { return "order.refunded" }

// OrderVerificationCreated is raised when the fraud gate record is attached
// at checkout.
type OrderVerificationCreated struct {
	eventBase
	VerificationID       uuid.UUID `json:"verification_id"`
	RiskScore            int       `json:"risk_score"`
	RequiresManualReview bool      `json:"requires_manual_review"`
}

func (OrderVerificationCreated) EventName() string { return "order.verification_created" }

// OrderVerificationVerified is raised when the fraud gate resolves to Verified.
type OrderVerificationVerified struct {
	eventBase
	VerificationID uuid.UUID `json:"verification_id"`
}

func (OrderVerificationVerified) EventName() string { return "order.verification_verified" }

// OrderVerificationRejected is raised when the fraud gate resolves to Rejected.
type OrderVerificationRejected struct {
	eventBase
	VerificationID uuid.UUID `json:"verification_id"`
}

func (OrderVerificationRejected) EventName() string { return "order.verification_rejected" }

// OrderSplitCreated is raised on each newly created split order.
type OrderSplitCreated struct {
	eventBase
	SplitID         uuid.UUID `json:"split_id"`
	OriginalOrderID uuid.UUID `json:"original_order_id"`
}

func (OrderSplitCreated) EventName() string { return "order.split_created" }

// OrderSplitCompleted is raised on the original order once all split orders
// exist and the split record is final.
type OrderSplitCompleted struct {
	eventBase
	SplitID       uuid.UUID   `json:"split_id"`
	SplitOrderIDs []uuid.UUID `json:"split_order_ids"`
	Reason        string      `json:"reason"`
}

func (OrderSplitCompleted) EventName() string { return "order.split_completed" }
