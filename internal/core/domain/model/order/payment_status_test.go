package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatus_Validate(t *testing.T) {
	t.Run("should pass for all defined statuses", func(t *testing.T) {
		statuses := []order.PaymentStatus{
			order.PaymentPending,
			order.PaymentProcessing,
			order.PaymentPaid,
			order.PaymentFailed,
			order.PaymentRefunded,
			order.PaymentPartiallyRefunded,
		}

		for _, s := range statuses {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should fail for unknown status", func(t *testing.T) {
		require.Error(t, order.PaymentUnknown.Validate())
		require.Error(t, order.PaymentStatus(77).Validate())
	})
}

func TestPaymentStatus_TransitionTo(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		processing, err := order.PaymentPending.TransitionTo(order.PaymentProcessing)
		require.NoError(t, err)

		paid, err := processing.TransitionTo(order.PaymentPaid)
		require.NoError(t, err)

		refunded, err := paid.TransitionTo(order.PaymentRefunded)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentRefunded, refunded)
	})

	t.Run("should allow failure from processing", func(t *testing.T) {
		failed, err := order.PaymentProcessing.TransitionTo(order.PaymentFailed)

		require.NoError(t, err)
		assert.Equal(t, order.PaymentFailed, failed)
	})

	t.Run("should allow repeated partial refunds", func(t *testing.T) {
		partial, err := order.PaymentPaid.TransitionTo(order.PaymentPartiallyRefunded)
		require.NoError(t, err)

		partial, err = partial.TransitionTo(order.PaymentPartiallyRefunded)
		require.NoError(t, err)

		refunded, err := partial.TransitionTo(order.PaymentRefunded)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentRefunded, refunded)
	})

	t.Run("should not skip processing", func(t *testing.T) {
		_, err := order.PaymentPending.TransitionTo(order.PaymentPaid)

		require.Error(t, err)
		var stateErr *errs.InvalidStateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("should not leave terminal states", func(t *testing.T) {
		_, err := order.PaymentFailed.TransitionTo(order.PaymentProcessing)
		require.Error(t, err)

		_, err = order.PaymentRefunded.TransitionTo(order.PaymentPaid)
		require.Error(t, err)
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		_, err := order.PaymentPending.TransitionTo(order.PaymentStatus(42))

		require.Error(t, err)
	})
}

func TestPaymentStatus_IsCaptured(t *testing.T) {
	t.Run("should report captured for paid and partially refunded", func(t *testing.T) {
		assert.True(t, order.PaymentPaid.IsCaptured())
		assert.True(t, order.PaymentPartiallyRefunded.IsCaptured())
	})

	t.Run("should report not captured otherwise", func(t *testing.T) {
		assert.False(t, order.PaymentPending.IsCaptured())
		assert.False(t, order.PaymentProcessing.IsCaptured())
		assert.False(t, order.PaymentFailed.IsCaptured())
		assert.False(t, order.PaymentRefunded.IsCaptured())
	})
}
