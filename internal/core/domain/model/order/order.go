package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder constructors.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the order-processing core. It owns its line
// items and verification record and is the only entry point for mutating them.
//
// Invariants:
//   - TotalAmount == SubTotal + ShippingCost + Tax − CouponDiscount − GiftCardDiscount
//   - combined discounts never exceed SubTotal + ShippingCost + Tax
//   - cumulative refunds never exceed TotalAmount
//   - lifecycle and payment transitions follow their state machines
//
// Every mutation records domain events on the aggregate; the application layer
// drains them into the transactional outbox on save.
type Order struct {
	id     kernel.UUID
	userID kernel.UUID

	items []*Item

	status           Status
	statusBeforeHold Status
	paymentStatus    PaymentStatus
	paymentMethod    *PaymentMethod

	shippingAddressID *kernel.UUID
	couponID          *kernel.UUID

	subTotal         kernel.Money
	shippingCost     kernel.Money
	tax              kernel.Money
	couponDiscount   kernel.Money
	giftCardDiscount kernel.Money
	totalAmount      kernel.Money
	refundedAmount   kernel.Money

	verification *Verification

	splitAt     *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	version int

	pendingEvents []Event

	guard guard.ConstructorGuard
}

// NewOrder creates a new empty order in Pending status with a Pending payment.
func NewOrder(id kernel.UUID, userID kernel.UUID) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:           StatusPending,
		paymentStatus:    PaymentPending,
		subTotal:         kernel.ZeroMoney(),
		shippingCost:     kernel.ZeroMoney(),
		tax:              kernel.ZeroMoney(),
		couponDiscount:   kernel.ZeroMoney(),
		giftCardDiscount: kernel.ZeroMoney(),
		totalAmount:      kernel.ZeroMoney(),
		refundedAmount:   kernel.ZeroMoney(),
		createdAt:        now,
		updatedAt:        now,
		version:          1,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
	); err != nil {
		return nil, err
	}

	order.raise(OrderCreated{
		eventBase:   newEventBase(order.id.Bytes()),
		UserID:      order.userID.Bytes(),
		TotalAmount: order.totalAmount.String(),
	})
	return order, nil
}

// RestoreOrderParams carries the persisted state of an order.
type RestoreOrderParams struct {
	ID                kernel.UUID
	UserID            kernel.UUID
	Items             []*Item
	Status            Status
	StatusBeforeHold  Status
	PaymentStatus     PaymentStatus
	PaymentMethod     *PaymentMethod
	ShippingAddressID *kernel.UUID
	CouponID          *kernel.UUID
	SubTotal          kernel.Money
	ShippingCost      kernel.Money
	Tax               kernel.Money
	CouponDiscount    kernel.Money
	GiftCardDiscount  kernel.Money
	TotalAmount       kernel.Money
	RefundedAmount    kernel.Money
	Verification      *Verification
	SplitAt           *time.Time
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
}

// RestoreOrder reconstructs an order from persistent storage. It validates
// identifiers, enum values, and child entities, but trusts the persisted
// monetary breakdown.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	order := &Order{
		items:             params.Items,
		statusBeforeHold:  params.StatusBeforeHold,
		paymentMethod:     params.PaymentMethod,
		shippingAddressID: params.ShippingAddressID,
		couponID:          params.CouponID,
		subTotal:          params.SubTotal,
		shippingCost:      params.ShippingCost,
		tax:               params.Tax,
		couponDiscount:    params.CouponDiscount,
		giftCardDiscount:  params.GiftCardDiscount,
		totalAmount:       params.TotalAmount,
		refundedAmount:    params.RefundedAmount,
		verification:      params.Verification,
		splitAt:           params.SplitAt,
		shippedAt:         params.ShippedAt,
		deliveredAt:       params.DeliveredAt,
		createdAt:         params.CreatedAt,
		updatedAt:         params.UpdatedAt,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(params.ID),
		order.setUserID(params.UserID),
		order.setStatus(params.Status),
		order.setPaymentStatus(params.PaymentStatus),
		order.setVersion(params.Version),
	); err != nil {
		return nil, err
	}

	for _, item := range order.items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if order.verification != nil {
		if err := order.verification.Validate(); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Items returns the order's line items. The returned slice is a copy; the
// items themselves are shared and must not be mutated by callers.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item returns the line item with the given id, or an ObjectNotFoundError.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemID", itemID.String())
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// StatusBeforeHold returns the status the order held before it was put OnHold,
// or StatusUnknown when the order is not on hold.
func (o *Order) StatusBeforeHold() Status {
	return o.statusBeforeHold
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentMethod returns the selected payment method, or nil if none was set.
func (o *Order) PaymentMethod() *PaymentMethod {
	return o.paymentMethod
}

// ShippingAddressID returns the shipping address reference, or nil.
func (o *Order) ShippingAddressID() *kernel.UUID {
	return o.shippingAddressID
}

// CouponID returns the applied coupon's identifier, or nil.
func (o *Order) CouponID() *kernel.UUID {
	return o.couponID
}

// SubTotal returns the sum of all line item totals.
func (o *Order) SubTotal() kernel.Money {
	return o.subTotal
}

// ShippingCost returns the shipping cost component.
func (o *Order) ShippingCost() kernel.Money {
	return o.shippingCost
}

// Tax returns the tax component.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// CouponDiscount returns the applied coupon discount amount.
func (o *Order) CouponDiscount() kernel.Money {
	return o.couponDiscount
}

// GiftCardDiscount returns the applied gift card discount amount.
func (o *Order) GiftCardDiscount() kernel.Money {
	return o.giftCardDiscount
}

// TotalAmount returns the payable total:
// SubTotal + ShippingCost + Tax − CouponDiscount − GiftCardDiscount.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// RefundedAmount returns the cumulative refunded amount.
func (o *Order) RefundedAmount() kernel.Money {
	return o.refundedAmount
}

// Verification returns the fraud gate record, or nil if none was attached.
func (o *Order) Verification() *Verification {
	return o.verification
}

// SplitAt returns when the order was split, or nil.
func (o *Order) SplitAt() *time.Time {
	return o.splitAt
}

// ShippedAt returns when the order shipped, or nil.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last modified.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic concurrency version loaded from storage.
func (o *Order) Version() int {
	return o.version
}

// PendingEvents returns the domain events recorded since the aggregate was
// loaded or created.
func (o *Order) PendingEvents() []Event {
	events := make([]Event, len(o.pendingEvents))
	copy(events, o.pendingEvents)
	return events
}

// ClearPendingEvents drops the recorded events after they were handed to the
// outbox.
func (o *Order) ClearPendingEvents() {
	o.pendingEvents = nil
}

// AddItem adds a line item to the order. Items can only be added while the
// order is Pending. Adding a product that is already on the order merges into
// the existing line, increasing its quantity and keeping the original unit
// price snapshot. Returns the affected line item.
func (o *Order) AddItem(itemID kernel.UUID, productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Item, error) {
	if !o.status.CanAddItems() {
		return nil, errs.NewInvalidStateError("AddItem", o.status.String())
	}

	var affected *Item
	for _, existing := range o.items {
		if existing.ProductID().IsEqual(productID) {
			if err := existing.setQuantity(existing.Quantity() + quantity); err != nil {
				return nil, err
			}
			affected = existing
			break
		}
	}

	if affected == nil {
		item, err := NewItem(itemID, productID, quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		o.items = append(o.items, item)
		affected = item
	}

	o.raise(OrderItemAdded{
		eventBase: newEventBase(o.id.Bytes()),
		ItemID:    affected.ID().Bytes(),
		ProductID: affected.ProductID().Bytes(),
		Quantity:  affected.Quantity(),
		UnitPrice: affected.UnitPrice().String(),
	})

	if err := o.recalculateTotals(); err != nil {
		return nil, err
	}
	o.touch()
	return affected, nil
}

// RemoveItem removes a line item. Allowed while the order is Pending or
// OnHold. Removal is rejected when it would push the applied discounts above
// the remaining order value; discounts must be removed first. Returns the
// removed item so its stock reservation can be released.
func (o *Order) RemoveItem(itemID kernel.UUID) (*Item, error) {
	if !o.status.CanModifyItems() {
		return nil, errs.NewInvalidStateError("RemoveItem", o.status.String())
	}

	index := -1
	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, errs.NewObjectNotFoundError("itemID", itemID.String())
	}

	removed := o.items[index]
	prospective, err := o.subTotal.Sub(removed.TotalPrice())
	if err != nil {
		return nil, err
	}
	if err = o.checkDiscountsAgainst(prospective); err != nil {
		return nil, err
	}

	o.items = append(o.items[:index], o.items[index+1:]...)

	o.raise(OrderItemRemoved{
		eventBase: newEventBase(o.id.Bytes()),
		ItemID:    removed.ID().Bytes(),
		ProductID: removed.ProductID().Bytes(),
		Quantity:  removed.Quantity(),
	})

	if err = o.recalculateTotals(); err != nil {
		return nil, err
	}
	o.touch()
	return removed, nil
}

// UpdateItemQuantity changes a line item's quantity. Allowed while the order
// is Pending or OnHold. Decreases are rejected when they would push the
// applied discounts above the remaining order value. Returns the updated item
// and its previous quantity so the stock reservation can be adjusted.
func (o *Order) UpdateItemQuantity(itemID kernel.UUID, quantity int) (*Item, int, error) {
	if !o.status.CanModifyItems() {
		return nil, 0, errs.NewInvalidStateError("UpdateItemQuantity", o.status.String())
	}

	item, err := o.Item(itemID)
	if err != nil {
		return nil, 0, err
	}

	oldQuantity := item.Quantity()
	if quantity < oldQuantity {
		delta := item.UnitPrice().MulInt(oldQuantity - quantity)
		prospective, subErr := o.subTotal.Sub(delta)
		if subErr != nil {
			return nil, 0, subErr
		}
		if err = o.checkDiscountsAgainst(prospective); err != nil {
			return nil, 0, err
		}
	}

	if err = item.setQuantity(quantity); err != nil {
		return nil, 0, err
	}

	o.raise(OrderItemUpdated{
		eventBase:   newEventBase(o.id.Bytes()),
		ItemID:      item.ID().Bytes(),
		ProductID:   item.ProductID().Bytes(),
		OldQuantity: oldQuantity,
		NewQuantity: quantity,
	})

	if err = o.recalculateTotals(); err != nil {
		return nil, 0, err
	}
	o.touch()
	return item, oldQuantity, nil
}

// SetShippingAddress sets the shipping address reference. Allowed while the
// order is Pending or OnHold.
func (o *Order) SetShippingAddress(addressID kernel.UUID) error {
	if !o.status.CanModifyItems() {
		return errs.NewInvalidStateError("SetShippingAddress", o.status.String())
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.shippingAddressID = &addressID
	o.touch()
	return nil
}

// SetShippingCost sets the shipping cost component and recalculates totals.
// Allowed while the order is Pending or OnHold.
func (o *Order) SetShippingCost(cost kernel.Money) error {
	if !o.status.CanModifyItems() {
		return errs.NewInvalidStateError("SetShippingCost", o.status.String())
	}
	previous := o.shippingCost
	o.shippingCost = cost
	if err := o.recalculateTotals(); err != nil {
		o.shippingCost = previous
		return err
	}
	o.touch()
	return nil
}

// SetTax sets the tax component and recalculates totals. Allowed while the
// order is Pending or OnHold.
func (o *Order) SetTax(tax kernel.Money) error {
	if !o.status.CanModifyItems() {
		return errs.NewInvalidStateError("SetTax", o.status.String())
	}
	previous := o.tax
	o.tax = tax
	if err := o.recalculateTotals(); err != nil {
		o.tax = previous
		return err
	}
	o.touch()
	return nil
}

// SetPaymentMethod selects the payment method. Allowed until the payment
// leaves Pending.
func (o *Order) SetPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	if o.paymentStatus != PaymentPending {
		return errs.NewInvalidStateError("SetPaymentMethod", o.paymentStatus.String())
	}
	o.paymentMethod = &method

	o.raise(OrderPaymentMethodChanged{
		eventBase:     newEventBase(o.id.Bytes()),
		PaymentMethod: method.String(),
	})
	o.touch()
	return nil
}

// ApplyCoupon applies a resolved coupon discount, replacing any previously
// applied coupon. Allowed while the order is Pending or OnHold. The discount
// combined with any gift card discount must not exceed
// SubTotal + ShippingCost + Tax.
func (o *Order) ApplyCoupon(couponID kernel.UUID, discount kernel.Money) error {
	if !o.status.CanModifyItems() {
		return errs.NewInvalidStateError("ApplyCoupon", o.status.String())
	}
	if err := couponID.Validate(); err != nil {
		return err
	}

	gross := o.subTotal.Add(o.shippingCost).Add(o.tax)
	if discount.Add(o.giftCardDiscount).GreaterThan(gross) {
		return errs.NewValueIsInvalidErrorWithCause("couponDiscount",
			fmt.Errorf("discounts %s exceed order value %s",
				discount.Add(o.giftCardDiscount).String(), gross.String()))
	}

	o.couponID = &couponID
	o.couponDiscount = discount

	o.raise(OrderCouponApplied{
		eventBase: newEventBase(o.id.Bytes()),
		CouponID:  couponID.Bytes(),
		Discount:  discount.String(),
	})

	if err := o.recalculateTotals(); err != nil {
		return err
	}
	o.touch()
	return nil
}

// RemoveCoupon removes the applied coupon. Allowed while the order is Pending
// or OnHold; returns ObjectNotFoundError when no coupon is applied.
func (o *Order) RemoveCoupon() error {
	if !o.status.CanModifyItems() {
		return errs.NewInvalidStateError("RemoveCoupon", o.status.String())
	}
	if o.couponID == nil {
		return errs.NewObjectNotFoundError("couponID", o.id.String())
	}

	removedID := *o.couponID
	o.couponID = nil
	o.couponDiscount = kernel.ZeroMoney()

	o.raise(OrderCouponRemoved{
		eventBase: newEventBase(o.id.Bytes()),
		CouponID:  removedID.Bytes(),
	})

	if err := o.recalculateTotals(); err != nil {
		return err
	}
	o.touch()
	return nil
}

// ApplyGiftCardDiscount applies a gift card discount, replacing any previously
// applied one. The amount must not exceed the order value remaining after the
// coupon discount; a larger amount is rejected with ValueIsOutOfRangeError and
// leaves the order unchanged. Allowed while the order is Pending or OnHold.
func (o *Order) ApplyGiftCardDiscount(amount kernel.Money) (kernel.Money, error) {
	if !o.status.CanModifyItems() {
		return kernel.ZeroMoney(), errs.NewInvalidStateError("ApplyGiftCardDiscount", o.status.String())
	}

	gross := o.subTotal.Add(o.shippingCost).Add(o.tax)
	remaining, err := gross.Sub(o.couponDiscount)
	if err != nil {
		return kernel.ZeroMoney(), err
	}

	if amount.GreaterThan(remaining) {
		return kernel.ZeroMoney(), errs.NewValueIsOutOfRangeError(
			"gift card amount", amount.String(), kernel.ZeroMoney().String(), remaining.String())
	}
	o.giftCardDiscount = amount

	o.raise(OrderGiftCardDiscountApplied{
		eventBase: newEventBase(o.id.Bytes()),
		Amount:    amount.String(),
	})

	if err = o.recalculateTotals(); err != nil {
		return kernel.ZeroMoney(), err
	}
	o.touch()
	return amount, nil
}

// ChangePaymentStatus transitions the payment axis. When payment reaches Paid
// while the order is still Pending, the order auto-advances to Confirmed if
// the approval policy allows it, otherwise it is put OnHold awaiting manual
// verification.
func (o *Order) ChangePaymentStatus(target PaymentStatus, policy ApprovalPolicy) error {
	newStatus, err := o.paymentStatus.TransitionTo(target)
	if err != nil {
		return err
	}

	previous := o.paymentStatus
	o.paymentStatus = newStatus

	o.raise(OrderPaymentStatusChanged{
		eventBase: newEventBase(o.id.Bytes()),
		OldStatus: previous.String(),
		NewStatus: newStatus.String(),
	})

	if newStatus == PaymentPaid && o.status == StatusPending {
		if policy.AllowsAutoConfirm(o.verification) {
			confirmed, confirmErr := o.status.Confirm()
			if confirmErr != nil {
				return confirmErr
			}
			o.status = confirmed
		} else {
			held, holdErr := o.status.Hold()
			if holdErr != nil {
				return holdErr
			}
			o.statusBeforeHold = o.status
			o.status = held
			o.raise(OrderPutOnHold{
				eventBase: newEventBase(o.id.Bytes()),
				Reason:    "awaiting manual verification",
			})
		}
	}

	o.touch()
	return nil
}

// PutOnHold suspends the order, remembering the current status so Resume can
// restore it. Allowed from Pending and Confirmed.
func (o *Order) PutOnHold(reason string) error {
	held, err := o.status.Hold()
	if err != nil {
		return err
	}

	o.statusBeforeHold = o.status
	o.status = held

	o.raise(OrderPutOnHold{
		eventBase: newEventBase(o.id.Bytes()),
		Reason:    reason,
	})
	o.touch()
	return nil
}

// Resume returns a held order to the status it had before the hold. An order
// held before any transition resumes to Pending. A rejected verification
// blocks resuming to Confirmed.
func (o *Order) Resume() error {
	if o.status != StatusOnHold {
		return errs.NewInvalidStateError("Resume", o.status.String())
	}

	restored := o.statusBeforeHold
	if restored == StatusUnknown {
		restored = StatusPending
	}
	if restored == StatusConfirmed && o.verification != nil && o.verification.IsRejected() {
		return errs.NewInvalidStateErrorWithCause("Resume", o.status.String(),
			errors.New("verification was rejected"))
	}

	o.status = restored
	o.statusBeforeHold = StatusUnknown

	o.raise(OrderResumed{
		eventBase:      newEventBase(o.id.Bytes()),
		RestoredStatus: restored.String(),
	})
	o.touch()
	return nil
}

// AttachVerification attaches the fraud gate record created at checkout.
// An order carries at most one verification.
func (o *Order) AttachVerification(verification *Verification) error {
	if err := verification.Validate(); err != nil {
		return err
	}
	if o.verification != nil {
		return errs.NewInvalidStateError("AttachVerification", o.status.String())
	}
	if !verification.OrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidError("verification orderID")
	}

	o.verification = verification

	o.raise(OrderVerificationCreated{
		eventBase:            newEventBase(o.id.Bytes()),
		VerificationID:       verification.ID().Bytes(),
		RiskScore:            verification.RiskScore(),
		RequiresManualReview: verification.RequiresManualReview(),
	})
	o.touch()
	return nil
}

// ApproveVerification resolves the fraud gate to Verified. When payment is
// already captured and the order is Pending or OnHold, the order advances to
// Confirmed.
func (o *Order) ApproveVerification() error {
	if o.verification == nil {
		return errs.NewObjectNotFoundError("verification", o.id.String())
	}
	if err := o.verification.verify(); err != nil {
		return err
	}

	o.raise(OrderVerificationVerified{
		eventBase:      newEventBase(o.id.Bytes()),
		VerificationID: o.verification.ID().Bytes(),
	})

	if o.paymentStatus.IsCaptured() && (o.status == StatusPending || o.status == StatusOnHold) {
		confirmed, err := o.status.Confirm()
		if err != nil {
			return err
		}
		o.status = confirmed
		o.statusBeforeHold = StatusUnknown
	}

	o.touch()
	return nil
}

// RejectVerification resolves the fraud gate to Rejected. A still-Pending
// order is cancelled immediately; an already Confirmed order is put OnHold; a
// held order stays OnHold. A rejected order can no longer resume to Confirmed
// or ship.
func (o *Order) RejectVerification() error {
	if o.verification == nil {
		return errs.NewObjectNotFoundError("verification", o.id.String())
	}
	if err := o.verification.reject(); err != nil {
		return err
	}

	o.raise(OrderVerificationRejected{
		eventBase:      newEventBase(o.id.Bytes()),
		VerificationID: o.verification.ID().Bytes(),
	})

	switch o.status {
	case StatusPending:
		cancelled, err := o.status.Cancel()
		if err != nil {
			return err
		}
		o.status = cancelled
		o.raise(OrderCancelled{
			eventBase: newEventBase(o.id.Bytes()),
			Reason:    "verification rejected",
		})
	case StatusConfirmed:
		held, err := o.status.Hold()
		if err != nil {
			return err
		}
		o.statusBeforeHold = o.status
		o.status = held
		o.raise(OrderPutOnHold{
			eventBase: newEventBase(o.id.Bytes()),
			Reason:    "verification rejected",
		})
	}

	o.touch()
	return nil
}

// MarkShipped transitions the order to Shipped. Only Confirmed orders with a
// non-rejected verification ship; the caller commits the stock reservations
// in the same transaction.
func (o *Order) MarkShipped(shippedAt time.Time) error {
	if o.verification != nil && o.verification.IsRejected() {
		return errs.NewInvalidStateErrorWithCause("MarkShipped", o.status.String(),
			errors.New("verification was rejected"))
	}

	shipped, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = shipped
	at := shippedAt.UTC()
	o.shippedAt = &at

	o.raise(OrderShipped{
		eventBase: newEventBase(o.id.Bytes()),
		ShippedAt: at,
	})
	o.touch()
	return nil
}

// MarkDelivered transitions the order to Delivered.
func (o *Order) MarkDelivered(deliveredAt time.Time) error {
	delivered, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = delivered
	at := deliveredAt.UTC()
	o.deliveredAt = &at

	o.raise(OrderDelivered{
		eventBase:   newEventBase(o.id.Bytes()),
		DeliveredAt: at,
	})
	o.touch()
	return nil
}

// Cancel transitions the order to Cancelled. Cancellation never refunds; a
// captured payment stays captured until an explicit Refund. The caller
// releases outstanding stock reservations in the same transaction.
func (o *Order) Cancel(reason string) error {
	cancelled, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = cancelled
	o.statusBeforeHold = StatusUnknown

	o.raise(OrderCancelled{
		eventBase: newEventBase(o.id.Bytes()),
		Reason:    reason,
	})
	o.touch()
	return nil
}

// Refund returns part or all of the captured amount. Refunds are allowed for
// Shipped, Delivered, and Cancelled orders with a captured payment, up to the
// total amount cumulatively. A refund that exhausts the total marks both the
// payment and the order as Refunded.
func (o *Order) Refund(amount kernel.Money) error {
	if o.status != StatusShipped && o.status != StatusDelivered && o.status != StatusCancelled {
		return errs.NewInvalidStateError("Refund", o.status.String())
	}
	if !o.paymentStatus.IsCaptured() {
		return errs.NewInvalidStateError("Refund", o.paymentStatus.String())
	}
	if !amount.GreaterThan(kernel.ZeroMoney()) {
		return errs.NewValueIsInvalidErrorWithCause("refund amount",
			fmt.Errorf("%s is not greater than 0", amount.String()))
	}

	refundable, err := o.totalAmount.Sub(o.refundedAmount)
	if err != nil {
		return err
	}
	if amount.GreaterThan(refundable) {
		return errs.NewValueIsOutOfRangeError("refund amount",
			amount.String(), "0", refundable.String())
	}

	o.refundedAmount = o.refundedAmount.Add(amount)
	full := o.refundedAmount.Equals(o.totalAmount)

	target := PaymentPartiallyRefunded
	if full {
		target = PaymentRefunded
	}
	newPaymentStatus, err := o.paymentStatus.TransitionTo(target)
	if err != nil {
		return err
	}
	previous := o.paymentStatus
	o.paymentStatus = newPaymentStatus

	if full {
		refunded, refundErr := o.status.Refund()
		if refundErr != nil {
			return refundErr
		}
		o.status = refunded
	}

	o.raise(OrderRefunded{
		eventBase: newEventBase(o.id.Bytes()),
		Amount:    amount.String(),
		Full:      full,
	})
	o.raise(OrderPaymentStatusChanged{
		eventBase: newEventBase(o.id.Bytes()),
		OldStatus: previous.String(),
		NewStatus: newPaymentStatus.String(),
	})
	o.touch()
	return nil
}

// checkDiscountsAgainst verifies the applied discounts still fit into the
// order value computed from the prospective sub total.
func (o *Order) checkDiscountsAgainst(prospectiveSubTotal kernel.Money) error {
	gross := prospectiveSubTotal.Add(o.shippingCost).Add(o.tax)
	discounts := o.couponDiscount.Add(o.giftCardDiscount)
	if discounts.GreaterThan(gross) {
		return errs.NewValueIsInvalidErrorWithCause("discounts",
			fmt.Errorf("discounts %s exceed order value %s", discounts.String(), gross.String()))
	}
	return nil
}

// recalculateTotals recomputes SubTotal and TotalAmount from the current
// items, cost components, and discounts, and records the new breakdown.
func (o *Order) recalculateTotals() error {
	subTotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subTotal = subTotal.Add(item.TotalPrice())
	}

	total := subTotal.Add(o.shippingCost).Add(o.tax)
	total, err := total.Sub(o.couponDiscount)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("couponDiscount", err)
	}
	total, err = total.Sub(o.giftCardDiscount)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("giftCardDiscount", err)
	}

	o.subTotal = subTotal
	o.totalAmount = total

	o.raise(OrderTotalsRecalculated{
		eventBase:        newEventBase(o.id.Bytes()),
		SubTotal:         o.subTotal.String(),
		ShippingCost:     o.shippingCost.String(),
		Tax:              o.tax.String(),
		CouponDiscount:   o.couponDiscount.String(),
		GiftCardDiscount: o.giftCardDiscount.String(),
		TotalAmount:      o.totalAmount.String(),
	})
	return nil
}

func (o *Order) raise(event Event) {
	o.pendingEvents = append(o.pendingEvents, event)
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

func (o *Order) setVersion(version int) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
