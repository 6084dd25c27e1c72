package services

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrOrderSplitterIsNotConstructed is returned when an OrderSplitter was not
// created through the NewOrderSplitter constructor.
var ErrOrderSplitterIsNotConstructed = errors.New(
	"OrderSplitter must be created via NewOrderSplitter constructor")

// GroupingFn maps a line item to its fulfillment group, typically a seller or
// warehouse key. Items mapped to the empty string stay on the original order.
type GroupingFn func(item *order.Item) string

// OrderSplitter divides an order whose items must ship from different sellers
// or warehouses into linked sub-orders.
//
// Each sub-order carries its item subset and a pro-rata share of shipping,
// tax, and discounts, allocated by subtotal so the sum of the sub-order totals
// plus any remainder left on the original equals the original total exactly.
// Partial-cent remainders go to the first split group.
type OrderSplitter struct {
	isConstructed bool
}

// NewOrderSplitter creates the split coordinator.
func NewOrderSplitter() (*OrderSplitter, error) {
	return &OrderSplitter{isConstructed: true}, nil
}

// Validate ensures the OrderSplitter was created through the constructor.
func (s *OrderSplitter) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrOrderSplitterIsNotConstructed
	}
	return nil
}

// Split divides the original order by the grouping function. It returns the
// split record and the newly created sub-orders, and finalizes the original
// in place: moved items are removed, the remainder allocation is applied, and
// the order is marked split.
//
// Only Pending or Confirmed orders that were not split before can be split,
// and the grouping must produce at least one non-empty group.
func (s *OrderSplitter) Split(
	original *order.Order,
	grouping GroupingFn,
	reason string,
) (*order.Split, []*order.Order, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	if err := original.Validate(); err != nil {
		return nil, nil, err
	}
	if grouping == nil {
		return nil, nil, errs.NewValueIsRequiredError("grouping")
	}
	if !original.CanSplit() {
		return nil, nil, errs.NewInvalidStateError("Split", original.Status().String())
	}

	items := original.Items()
	if len(items) == 0 {
		return nil, nil, errs.NewValueIsRequiredError("order items")
	}

	// Group items preserving first-occurrence order so allocation is
	// deterministic for a given order and grouping.
	groupKeys := make([]string, 0, len(items))
	groups := make(map[string][]*order.Item, len(items))
	var remainder []*order.Item
	for _, item := range items {
		key := grouping(item)
		if key == "" {
			remainder = append(remainder, item)
			continue
		}
		if _, seen := groups[key]; !seen {
			groupKeys = append(groupKeys, key)
		}
		groups[key] = append(groups[key], item)
	}

	if len(groupKeys) == 0 {
		return nil, nil, errs.NewValueIsInvalidError("grouping")
	}

	// Allocation weights: split groups first, remainder last, so rounding
	// residue lands on the first split group.
	weights := make([]kernel.Money, 0, len(groupKeys)+1)
	for _, key := range groupKeys {
		weights = append(weights, groupSubTotal(groups[key]))
	}
	if len(remainder) > 0 {
		weights = append(weights, groupSubTotal(remainder))
	}

	shippingShares, err := original.ShippingCost().Allocate(weights)
	if err != nil {
		return nil, nil, err
	}
	taxShares, err := original.Tax().Allocate(weights)
	if err != nil {
		return nil, nil, err
	}
	couponShares, err := original.CouponDiscount().Allocate(weights)
	if err != nil {
		return nil, nil, err
	}
	giftCardShares, err := original.GiftCardDiscount().Allocate(weights)
	if err != nil {
		return nil, nil, err
	}

	splitID := kernel.NewUUID()
	splitOrders := make([]*order.Order, 0, len(groupKeys))
	splitOrderIDs := make([]kernel.UUID, 0, len(groupKeys))
	movedItemIDs := make([]kernel.UUID, 0, len(items))

	for i, key := range groupKeys {
		copies := make([]*order.Item, 0, len(groups[key]))
		for _, item := range groups[key] {
			itemCopy, itemErr := order.RestoreItem(
				kernel.NewUUID(), item.ProductID(), item.Quantity(), item.UnitPrice())
			if itemErr != nil {
				return nil, nil, itemErr
			}
			copies = append(copies, itemCopy)
			movedItemIDs = append(movedItemIDs, item.ID())
		}

		splitOrder, orderErr := order.NewSplitOrder(
			kernel.NewUUID(),
			splitID,
			original,
			copies,
			shippingShares[i],
			taxShares[i],
			couponShares[i],
			giftCardShares[i],
		)
		if orderErr != nil {
			return nil, nil, orderErr
		}
		splitOrders = append(splitOrders, splitOrder)
		splitOrderIDs = append(splitOrderIDs, splitOrder.ID())
	}

	split, err := order.NewSplit(splitID, original.ID(), splitOrderIDs, reason)
	if err != nil {
		return nil, nil, err
	}

	fullSplit := len(remainder) == 0
	remainderShipping := kernel.ZeroMoney()
	remainderTax := kernel.ZeroMoney()
	remainderCoupon := kernel.ZeroMoney()
	remainderGiftCard := kernel.ZeroMoney()
	if !fullSplit {
		last := len(weights) - 1
		remainderShipping = shippingShares[last]
		remainderTax = taxShares[last]
		remainderCoupon = couponShares[last]
		remainderGiftCard = giftCardShares[last]
	}

	if err = original.CompleteSplit(
		split,
		movedItemIDs,
		remainderShipping,
		remainderTax,
		remainderCoupon,
		remainderGiftCard,
		fullSplit,
	); err != nil {
		return nil, nil, err
	}

	return split, splitOrders, nil
}

func groupSubTotal(items []*order.Item) kernel.Money {
	subTotal := kernel.ZeroMoney()
	for _, item := range items {
		subTotal = subTotal.Add(item.TotalPrice())
	}
	return subTotal
}
