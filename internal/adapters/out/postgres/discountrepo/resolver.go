package discountrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDiscountResolver implements DiscountResolver using GORM.
// Validation is a pure read; usage counters are bumped by the same
// transaction the caller commits the order in.
type GormDiscountResolver struct {
	db *gorm.DB
}

// NewGormDiscountResolver creates a new GORM discount resolver.
func NewGormDiscountResolver(db *gorm.DB) *GormDiscountResolver {
	return &GormDiscountResolver{db: db}
}

// ValidateCoupon checks a coupon against the order and computes the discount
// it grants. A coupon that exists but does not qualify produces a
// DiscountRejectedError carrying the specific reason.
func (r *GormDiscountResolver) ValidateCoupon(
	ctx context.Context,
	couponID kernel.UUID,
	orderSubTotal kernel.Money,
	_ kernel.UUID,
) (kernel.Money, error) {
	if err := couponID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var coupon CouponDTO
	err := r.db.WithContext(ctx).First(&coupon, "id = ?", couponID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Money{}, errs.NewObjectNotFoundError("coupon", couponID.String())
		}
		return kernel.Money{}, err
	}

	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return kernel.Money{}, errs.NewDiscountRejectedError(couponID.String(), errs.DiscountRejectionExpired)
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return kernel.Money{}, errs.NewDiscountRejectedError(couponID.String(), errs.DiscountRejectionUsageLimitExceeded)
	}
	if orderSubTotal.Decimal().LessThan(coupon.MinOrderTotal) {
		return kernel.Money{}, errs.NewDiscountRejectedError(couponID.String(), errs.DiscountRejectionMinimumOrderNotMet)
	}

	discount := coupon.Value
	if coupon.Kind == CouponKindPercent {
		discount = orderSubTotal.Decimal().
			Mul(coupon.Value).
			Div(decimal.NewFromInt(100)).
			Round(2)
	}
	if discount.GreaterThan(orderSubTotal.Decimal()) {
		discount = orderSubTotal.Decimal()
	}

	return kernel.NewMoney(discount)
}
