package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitOrderCommand(t *testing.T) {
	t.Run("should create command with valid parameters", func(t *testing.T) {
		orderID := kernel.NewUUID()
		productA := kernel.NewUUID()
		productB := kernel.NewUUID()
		assignments := map[kernel.UUID]string{
			productA: "seller-1",
			productB: "", // stays on the original order
		}

		cmd, err := commands.NewSplitOrderCommand(orderID, "multi-seller checkout", assignments)

		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, "multi-seller checkout", cmd.Reason())
		assert.Equal(t, assignments, cmd.Assignments())
		require.NoError(t, cmd.Validate())
	})

	t.Run("should copy assignments defensively", func(t *testing.T) {
		productID := kernel.NewUUID()
		assignments := map[kernel.UUID]string{productID: "seller-1"}

		cmd, err := commands.NewSplitOrderCommand(kernel.NewUUID(), "reason", assignments)
		require.NoError(t, err)

		assignments[productID] = "mutated"
		assert.Equal(t, "seller-1", cmd.Assignments()[productID])

		returned := cmd.Assignments()
		returned[productID] = "mutated again"
		assert.Equal(t, "seller-1", cmd.Assignments()[productID])
	})

	t.Run("should reject empty reason", func(t *testing.T) {
		assignments := map[kernel.UUID]string{kernel.NewUUID(): "seller-1"}

		_, err := commands.NewSplitOrderCommand(kernel.NewUUID(), "", assignments)

		require.Error(t, err)
		var required *errs.ValueIsRequiredError
		require.ErrorAs(t, err, &required)
	})

	t.Run("should reject assignments without any group", func(t *testing.T) {
		assignments := map[kernel.UUID]string{
			kernel.NewUUID(): "",
			kernel.NewUUID(): "",
		}

		_, err := commands.NewSplitOrderCommand(kernel.NewUUID(), "reason", assignments)

		require.Error(t, err)
		var required *errs.ValueIsRequiredError
		require.ErrorAs(t, err, &required)
	})

	t.Run("should reject empty assignments", func(t *testing.T) {
		_, err := commands.NewSplitOrderCommand(kernel.NewUUID(), "reason", map[kernel.UUID]string{})

		require.Error(t, err)
	})

	t.Run("should reject unconstructed product id", func(t *testing.T) {
		assignments := map[kernel.UUID]string{{}: "seller-1"}

		_, err := commands.NewSplitOrderCommand(kernel.NewUUID(), "reason", assignments)

		require.Error(t, err)
	})

	t.Run("should fail validation on zero value command", func(t *testing.T) {
		var cmd commands.SplitOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrSplitOrderCommandIsNotConstructed)
	})
}
