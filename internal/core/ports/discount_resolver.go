package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// DiscountResolver validates and prices coupon application against an order's
// current subtotal. The order never computes coupon eligibility itself; it
// only applies the returned discount amount.
type DiscountResolver interface {
	// ValidateCoupon checks expiry, usage limits, minimum order value, and
	// item applicability, and returns the discount amount the coupon yields
	// for the given subtotal. Fails with a DiscountRejectedError carrying the
	// specific rejection reason.
	ValidateCoupon(
		ctx context.Context,
		couponID kernel.UUID,
		orderSubTotal kernel.Money,
		userID kernel.UUID,
	) (kernel.Money, error)
}
