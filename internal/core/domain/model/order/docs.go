// Package order contains the Order aggregate root and its owned entities:
// line items, the fraud verification gate, and the split record linking an
// order to its per-seller sub-orders.
//
// The aggregate owns the full order lifecycle (Pending through Delivered,
// Cancelled, or Refunded), the independent payment status axis, and all
// monetary fields. Every mutating operation validates its preconditions,
// applies the change, recomputes the totals invariant
//
//	TotalAmount == SubTotal + ShippingCost + Tax − CouponDiscount − GiftCardDiscount
//
// and raises domain events describing the change. Events accumulate on the
// aggregate until the application layer hands them to the outbox; the
// aggregate itself never publishes anything.
//
// Cross-aggregate effects (stock reservations, coupon validation) happen
// through explicit calls to narrow ports owned by the application layer; the
// aggregate references products, coupons, and addresses by id only.
package order
