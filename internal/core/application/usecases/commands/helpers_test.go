package commands_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, value string) kernel.Money {
	t.Helper()

	amount, err := decimal.NewFromString(value)
	require.NoError(t, err)

	money, err := kernel.NewMoney(amount)
	require.NoError(t, err)

	return money
}

// newStoredOrder builds a pending order with a single line item the way a
// repository would return it, with no pending events.
func newStoredOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	_, err = aggregate.AddItem(kernel.NewUUID(), kernel.NewUUID(), 2, mustMoney(t, "50.00"))
	require.NoError(t, err)

	aggregate.ClearPendingEvents()

	return aggregate
}

// newStoredConfirmedOrder advances a stored order through verification and
// payment capture so it lands in Confirmed.
func newStoredConfirmedOrder(t *testing.T) *order.Order {
	t.Helper()

	aggregate := newStoredOrder(t)

	verification, err := order.NewVerification(
		kernel.NewUUID(), aggregate.ID(), order.VerificationTypeAutomatic, 10, false)
	require.NoError(t, err)
	require.NoError(t, aggregate.AttachVerification(verification))

	policy := order.DefaultApprovalPolicy()
	require.NoError(t, aggregate.ChangePaymentStatus(order.PaymentProcessing, policy))
	require.NoError(t, aggregate.ChangePaymentStatus(order.PaymentPaid, policy))
	require.Equal(t, order.StatusConfirmed, aggregate.Status())

	aggregate.ClearPendingEvents()

	return aggregate
}
