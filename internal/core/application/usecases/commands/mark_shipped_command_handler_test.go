package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkShippedCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredConfirmedOrder(t)
	shippedAt := time.Now()

	cmd, err := commands.NewMarkShippedCommand(aggregate.ID(), shippedAt)
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockLedger := new(MockStockLedger)
	mockOutbox := new(MockEventOutbox)
	mockUoW := new(MockStockUoW)
	mockFactory := new(MockStockUoWFactory)

	// Shipping turns the order's reservations into permanent stock decrements.
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("StockLedger").Return(mockLedger).Once(),
		mockLedger.On("CommitAll", ctx, aggregate.ID()).Return(nil).Once(),
		mockRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("Outbox").Return(mockOutbox).Once(),
		mockOutbox.On("Publish", ctx, mock.AnythingOfType("[]order.Event")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewMarkShippedCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, aggregate.Status())
	require.NotNil(t, aggregate.ShippedAt())
	assert.True(t, aggregate.ShippedAt().Equal(shippedAt))
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
	mockOutbox.AssertExpectations(t)
}

func TestMarkShippedCommandHandler_Handle_RejectsPendingOrder(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredOrder(t) // never confirmed

	cmd, err := commands.NewMarkShippedCommand(aggregate.ID(), time.Now())
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockStockUoW)
	mockFactory := new(MockStockUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewMarkShippedCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	var invalidState *errs.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, order.StatusPending, aggregate.Status())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestMarkShippedCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.MarkShippedCommand // zero value command

	mockFactory := new(MockStockUoWFactory)
	handler := commands.NewMarkShippedCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrMarkShippedCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
}
