package errs

import (
	"errors"
	"fmt"
)

// ErrDiscountRejected is the sentinel error for all DiscountRejectedError
// instances. The error is recoverable and carries the specific reason so it
// can be surfaced to the end user.
var ErrDiscountRejected = errors.New("discount rejected")

// DiscountRejectionReason classifies why a coupon or gift card was rejected.
type DiscountRejectionReason string

const (
	DiscountRejectionExpired              DiscountRejectionReason = "expired"
	DiscountRejectionUsageLimitExceeded   DiscountRejectionReason = "usage-limit-exceeded"
	DiscountRejectionMinimumOrderNotMet   DiscountRejectionReason = "minimum-order-not-met"
	DiscountRejectionNotApplicableToItems DiscountRejectionReason = "not-applicable-to-items"
)

// DiscountRejectedError indicates that coupon or gift card validation failed.
type DiscountRejectedError struct {
	CouponID string
	Reason   DiscountRejectionReason
}

// NewDiscountRejectedError creates a DiscountRejectedError with the specific
// rejection reason.
func NewDiscountRejectedError(couponID string, reason DiscountRejectionReason) *DiscountRejectedError {
	return &DiscountRejectedError{
		CouponID: couponID,
		Reason:   reason,
	}
}

func (e *DiscountRejectedError) Error() string {
	return fmt.Sprintf("%s: coupon %s (reason: %s)", ErrDiscountRejected, e.CouponID, e.Reason)
}

func (e *DiscountRejectedError) Unwrap() error {
	return ErrDiscountRejected
}
