package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerification(t *testing.T) {
	validID := kernel.NewUUID()
	validOrderID := kernel.NewUUID()

	t.Run("should create pending verification with valid parameters", func(t *testing.T) {
		v, err := order.NewVerification(validID, validOrderID, order.VerificationTypeAutomatic, 25, false)

		require.NoError(t, err)
		require.NoError(t, v.Validate())
		assert.True(t, v.ID().IsEqual(validID))
		assert.True(t, v.OrderID().IsEqual(validOrderID))
		assert.Equal(t, order.VerificationTypeAutomatic, v.Type())
		assert.Equal(t, 25, v.RiskScore())
		assert.False(t, v.RequiresManualReview())
		assert.True(t, v.IsPending())
		assert.False(t, v.CreatedAt().IsZero())
	})

	t.Run("should accept risk score boundaries", func(t *testing.T) {
		low, err := order.NewVerification(validID, validOrderID, order.VerificationTypeManual, 0, false)
		require.NoError(t, err)
		assert.Equal(t, 0, low.RiskScore())

		high, err := order.NewVerification(validID, validOrderID, order.VerificationTypeManual, 100, true)
		require.NoError(t, err)
		assert.Equal(t, 100, high.RiskScore())
	})

	t.Run("should fail with out of range risk score", func(t *testing.T) {
		_, err := order.NewVerification(validID, validOrderID, order.VerificationTypeAutomatic, 101, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "riskScore")

		_, err = order.NewVerification(validID, validOrderID, order.VerificationTypeAutomatic, -1, false)
		require.Error(t, err)
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewVerification(invalidID, validOrderID, order.VerificationTypeAutomatic, 10, false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with unsupported type", func(t *testing.T) {
		_, err := order.NewVerification(validID, validOrderID, order.VerificationType("psychic"), 10, false)

		require.Error(t, err)
	})

	t.Run("should fail validation for nil verification", func(t *testing.T) {
		var v *order.Verification

		err := v.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrVerificationIsNotConstructed, err)
	})
}

func TestRestoreVerification(t *testing.T) {
	validID := kernel.NewUUID()
	validOrderID := kernel.NewUUID()
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("should restore with persisted state and timestamp", func(t *testing.T) {
		v, err := order.RestoreVerification(
			validID, validOrderID, order.VerificationTypeManual, 80, true,
			order.VerificationRejected, createdAt)

		require.NoError(t, err)
		assert.True(t, v.IsRejected())
		assert.Equal(t, createdAt, v.CreatedAt())
	})

	t.Run("should fail with invalid persisted state", func(t *testing.T) {
		_, err := order.RestoreVerification(
			validID, validOrderID, order.VerificationTypeManual, 80, true,
			order.VerificationUnknown, createdAt)

		require.Error(t, err)
	})
}

func TestApprovalPolicy_AllowsAutoConfirm(t *testing.T) {
	orderID := kernel.NewUUID()
	policy := order.DefaultApprovalPolicy()

	t.Run("should not auto confirm without verification", func(t *testing.T) {
		assert.False(t, policy.AllowsAutoConfirm(nil))
	})

	t.Run("should auto confirm a verified verification", func(t *testing.T) {
		v, err := order.RestoreVerification(
			kernel.NewUUID(), orderID, order.VerificationTypeManual, 90, true,
			order.VerificationVerified, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, policy.AllowsAutoConfirm(v))
	})

	t.Run("should never auto confirm a rejected verification", func(t *testing.T) {
		v, err := order.RestoreVerification(
			kernel.NewUUID(), orderID, order.VerificationTypeAutomatic, 5, false,
			order.VerificationRejected, time.Now().UTC())
		require.NoError(t, err)

		assert.False(t, policy.AllowsAutoConfirm(v))
	})

	t.Run("should auto confirm pending verification below threshold", func(t *testing.T) {
		v, err := order.NewVerification(
			kernel.NewUUID(), orderID, order.VerificationTypeAutomatic, 29, false)
		require.NoError(t, err)

		assert.True(t, policy.AllowsAutoConfirm(v))
	})

	t.Run("should not auto confirm at or above threshold", func(t *testing.T) {
		v, err := order.NewVerification(
			kernel.NewUUID(), orderID, order.VerificationTypeAutomatic, 30, false)
		require.NoError(t, err)

		assert.False(t, policy.AllowsAutoConfirm(v))
	})

	t.Run("should not auto confirm when manual review is required", func(t *testing.T) {
		v, err := order.NewVerification(
			kernel.NewUUID(), orderID, order.VerificationTypeAutomatic, 10, true)
		require.NoError(t, err)

		assert.False(t, policy.AllowsAutoConfirm(v))
	})

	t.Run("should honor a custom threshold", func(t *testing.T) {
		strict := order.ApprovalPolicy{AutoApproveRiskThreshold: 5}
		v, err := order.NewVerification(
			kernel.NewUUID(), orderID, order.VerificationTypeAutomatic, 10, false)
		require.NoError(t, err)

		assert.False(t, strict.AllowsAutoConfirm(v))
	})
}
