package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewItem(t *testing.T) {
	validID := kernel.NewUUID()
	validProductID := kernel.NewUUID()

	t.Run("should create valid item", func(t *testing.T) {
		price := mustMoney(t, "49.99")

		item, err := order.NewItem(validID, validProductID, 3, price)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.True(t, item.ID().IsEqual(validID))
		assert.True(t, item.ProductID().IsEqual(validProductID))
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "49.99", item.UnitPrice().String())
		assert.Equal(t, "149.97", item.TotalPrice().String())
	})

	t.Run("should fail with zero quantity", func(t *testing.T) {
		item, err := order.NewItem(validID, validProductID, 0, mustMoney(t, "10.00"))

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail with negative quantity", func(t *testing.T) {
		item, err := order.NewItem(validID, validProductID, -2, mustMoney(t, "10.00"))

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("should fail with zero unit price", func(t *testing.T) {
		item, err := order.NewItem(validID, validProductID, 1, kernel.ZeroMoney())

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "unit price")
	})

	t.Run("should fail with invalid product id", func(t *testing.T) {
		var invalidProductID kernel.UUID

		item, err := order.NewItem(validID, invalidProductID, 1, mustMoney(t, "10.00"))

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		item, err := order.NewItem(invalidID, validProductID, 0, kernel.ZeroMoney())

		require.Error(t, err)
		assert.Nil(t, item)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "unit price")
	})

	t.Run("should fail validation for nil item", func(t *testing.T) {
		var item *order.Item

		err := item.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrItemIsNotConstructed, err)
	})
}

func TestRestoreItem(t *testing.T) {
	t.Run("should restore with same validation as new", func(t *testing.T) {
		item, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), 5, mustMoney(t, "2.50"))

		require.NoError(t, err)
		assert.Equal(t, "12.50", item.TotalPrice().String())
	})

	t.Run("should reject invalid persisted quantity", func(t *testing.T) {
		_, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), -1, mustMoney(t, "2.50"))

		require.Error(t, err)
	})
}
