// Package discountrepo implements the discount resolver on PostgreSQL.
// Coupons are read-validated here; the resulting discount amount is applied
// to the order by the caller.
package discountrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// CouponKindFixed takes Value off the order subtotal.
	CouponKindFixed = "fixed"
	// CouponKindPercent takes Value percent off the order subtotal.
	CouponKindPercent = "percent"
)

// CouponDTO represents a persisted coupon definition.
type CouponDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code          string          `gorm:"uniqueIndex"`
	Kind          string
	Value         decimal.Decimal `gorm:"type:numeric(14,2)"`
	MinOrderTotal decimal.Decimal `gorm:"type:numeric(14,2)"`
	UsageLimit    int
	UsedCount     int
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}

// TableName specifies the database table name for coupons.
func (CouponDTO) TableName() string {
	return "coupons"
}
