package order

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrSplitIsNotConstructed is returned when a Split instance was not created
// through the NewSplit or RestoreSplit constructors.
var ErrSplitIsNotConstructed = errors.New("Split must be created via NewSplit or RestoreSplit constructor")

// Split is the record linking an original order to the sub-orders created
// from it when its items must ship from different sellers or warehouses.
// The record is immutable once created.
type Split struct {
	id              kernel.UUID
	originalOrderID kernel.UUID
	splitOrderIDs   []kernel.UUID
	reason          string
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewSplit creates a split record for the given original order and the
// resulting split order ids. At least one split order is required.
func NewSplit(id kernel.UUID, originalOrderID kernel.UUID, splitOrderIDs []kernel.UUID, reason string) (*Split, error) {
	split := &Split{
		reason:    reason,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		split.setID(id),
		split.setOriginalOrderID(originalOrderID),
		split.setSplitOrderIDs(splitOrderIDs),
	); err != nil {
		return nil, err
	}

	return split, nil
}

// RestoreSplit reconstructs a split record from persistent storage.
func RestoreSplit(
	id kernel.UUID,
	originalOrderID kernel.UUID,
	splitOrderIDs []kernel.UUID,
	reason string,
	createdAt time.Time,
) (*Split, error) {
	split, err := NewSplit(id, originalOrderID, splitOrderIDs, reason)
	if err != nil {
		return nil, err
	}
	split.createdAt = createdAt
	return split, nil
}

// Validate ensures the Split was created through a constructor.
func (s *Split) Validate() error {
	if s == nil {
		return ErrSplitIsNotConstructed
	}
	return s.guard.Validate(ErrSplitIsNotConstructed)
}

// ID returns the split record's unique identifier.
func (s *Split) ID() kernel.UUID {
	return s.id
}

// OriginalOrderID returns the identifier of the order that was split.
func (s *Split) OriginalOrderID() kernel.UUID {
	return s.originalOrderID
}

// SplitOrderIDs returns the identifiers of the orders created by the split.
func (s *Split) SplitOrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(s.splitOrderIDs))
	copy(ids, s.splitOrderIDs)
	return ids
}

// Reason returns the reason the order was split.
func (s *Split) Reason() string {
	return s.reason
}

// CreatedAt returns when the split was performed.
func (s *Split) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Split) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Split) setOriginalOrderID(originalOrderID kernel.UUID) error {
	if err := originalOrderID.Validate(); err != nil {
		return err
	}
	s.originalOrderID = originalOrderID
	return nil
}

func (s *Split) setSplitOrderIDs(splitOrderIDs []kernel.UUID) error {
	if len(splitOrderIDs) == 0 {
		return errs.NewValueIsRequiredError("splitOrderIDs")
	}
	for _, id := range splitOrderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	s.splitOrderIDs = make([]kernel.UUID, len(splitOrderIDs))
	copy(s.splitOrderIDs, splitOrderIDs)
	return nil
}

// CanSplit reports whether the order may be split: only Pending or Confirmed
// orders that were not split before.
func (o *Order) CanSplit() bool {
	return (o.status == StatusPending || o.status == StatusConfirmed) && o.splitAt == nil
}

// NewSplitOrder creates a sub-order carrying a subset of the original order's
// items and a pre-allocated share of its cost components. The sub-order
// inherits the original's user, shipping address, payment context, and
// lifecycle status.
func NewSplitOrder(
	id kernel.UUID,
	splitID kernel.UUID,
	original *Order,
	items []*Item,
	shippingCost kernel.Money,
	tax kernel.Money,
	couponDiscount kernel.Money,
	giftCardDiscount kernel.Money,
) (*Order, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if !original.CanSplit() {
		return nil, errs.NewInvalidStateError("Split", original.status.String())
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if err := splitID.Validate(); err != nil {
		return nil, err
	}

	splitOrder, err := NewOrder(id, original.userID)
	if err != nil {
		return nil, err
	}
	splitOrder.ClearPendingEvents()

	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}
	splitOrder.items = items

	splitOrder.status = original.status
	splitOrder.paymentStatus = original.paymentStatus
	splitOrder.paymentMethod = original.paymentMethod
	splitOrder.shippingAddressID = original.shippingAddressID
	splitOrder.shippingCost = shippingCost
	splitOrder.tax = tax
	splitOrder.couponDiscount = couponDiscount
	splitOrder.giftCardDiscount = giftCardDiscount
	if !couponDiscount.IsZero() {
		splitOrder.couponID = original.couponID
	}

	splitOrder.raise(OrderSplitCreated{
		eventBase:       newEventBase(splitOrder.id.Bytes()),
		SplitID:         splitID.Bytes(),
		OriginalOrderID: original.id.Bytes(),
	})

	if err = splitOrder.recalculateTotals(); err != nil {
		return nil, err
	}
	return splitOrder, nil
}

// CompleteSplit finalizes a split on the original order. For a partial split
// the moved items are removed and the remainder cost allocation is applied;
// a fully split order keeps its items and totals as an informational record.
// Either way the order is marked split and cannot be split again.
func (o *Order) CompleteSplit(
	split *Split,
	movedItemIDs []kernel.UUID,
	remainderShipping kernel.Money,
	remainderTax kernel.Money,
	remainderCoupon kernel.Money,
	remainderGiftCard kernel.Money,
	fullSplit bool,
) error {
	if err := split.Validate(); err != nil {
		return err
	}
	if !o.CanSplit() {
		return errs.NewInvalidStateError("Split", o.status.String())
	}
	if !split.OriginalOrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidError("split originalOrderID")
	}

	if !fullSplit {
		for _, itemID := range movedItemIDs {
			index := -1
			for i, item := range o.items {
				if item.ID().IsEqual(itemID) {
					index = i
					break
				}
			}
			if index < 0 {
				return errs.NewObjectNotFoundError("itemID", itemID.String())
			}
			o.items = append(o.items[:index], o.items[index+1:]...)
		}

		o.shippingCost = remainderShipping
		o.tax = remainderTax
		o.couponDiscount = remainderCoupon
		o.giftCardDiscount = remainderGiftCard
		if remainderCoupon.IsZero() {
			o.couponID = nil
		}
		if err := o.recalculateTotals(); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	o.splitAt = &now

	splitOrderIDs := split.SplitOrderIDs()
	eventIDs := make([]uuid.UUID, 0, len(splitOrderIDs))
	for _, id := range splitOrderIDs {
		eventIDs = append(eventIDs, id.Bytes())
	}
	o.raise(OrderSplitCompleted{
		eventBase:     newEventBase(o.id.Bytes()),
		SplitID:       split.ID().Bytes(),
		SplitOrderIDs: eventIDs,
		Reason:        split.Reason(),
	})
	o.touch()
	return nil
}
