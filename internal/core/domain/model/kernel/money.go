package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable value object representing a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to avoid floating-point drift in order
// totals. All order monetary fields (subtotal, shipping, tax, discounts, total)
// are Money values, and the aggregate invariant
//
//	TotalAmount == SubTotal + ShippingCost + Tax − CouponDiscount − GiftCardDiscount
//
// is maintained with exact decimal arithmetic.
//
// The zero value is a valid zero amount, so optional fields like discounts do not
// need explicit initialization.
//
// Example:
//
//	price, err := kernel.MoneyFromString("50.00")
//	if err != nil {
//	    // handle error
//	}
//	subtotal := price.MulInt(2) // 100.00
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value from a decimal amount.
// Returns a validation error for negative amounts.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a Money value from its decimal string representation.
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(amount)
}

// MoneyFromFloat creates a Money value from a float64. Intended for transport
// payloads only; domain code should prefer NewMoney or MoneyFromString.
func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m minus other. Returns a validation error when the result would
// be negative, since Money can never go below zero.
func (m Money) Sub(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%s - %s is negative", m.amount.String(), other.amount.String()))
	}
	return Money{amount: result}, nil
}

// MulInt returns the amount multiplied by a non-negative integer factor.
// Used to compute line totals (unit price times quantity).
func (m Money) MulInt(factor int) Money {
	if factor < 0 {
		factor = 0
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equals compares two amounts by value.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Decimal returns the underlying decimal amount for persistence and transport.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount formatted with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Allocate splits the amount pro-rata by the given weights, rounded to two
// decimal places, with any partial-cent remainder assigned to the first bucket.
// The returned parts always sum exactly to the whole, which keeps order split
// totals consistent with the original order.
//
// Buckets after the first receive their proportional share rounded down; the
// first bucket receives the rest. When all weights are zero the whole amount is
// assigned to the first bucket.
func (m Money) Allocate(weights []Money) ([]Money, error) {
	if len(weights) == 0 {
		return nil, errs.NewValueIsRequiredError("allocation weights")
	}

	total := decimal.Zero
	for _, w := range weights {
		total = total.Add(w.amount)
	}

	parts := make([]Money, len(weights))
	if total.IsZero() {
		parts[0] = m
		for i := 1; i < len(parts); i++ {
			parts[i] = ZeroMoney()
		}
		return parts, nil
	}

	rest := m.amount
	for i := 1; i < len(weights); i++ {
		share := m.amount.Mul(weights[i].amount).Div(total).RoundFloor(2)
		parts[i] = Money{amount: share}
		rest = rest.Sub(share)
	}
	parts[0] = Money{amount: rest}

	return parts, nil
}
