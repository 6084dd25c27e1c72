package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredOrder(t)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), "customer request")
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockLedger := new(MockStockLedger)
	mockOutbox := new(MockEventOutbox)
	mockUoW := new(MockStockUoW)
	mockFactory := new(MockStockUoWFactory)

	// Cancellation releases every reservation held by the order.
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("StockLedger").Return(mockLedger).Once(),
		mockLedger.On("ReleaseAll", ctx, aggregate.ID()).Return(nil).Once(),
		mockRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("Outbox").Return(mockOutbox).Once(),
		mockOutbox.On("Publish", ctx, mock.AnythingOfType("[]order.Event")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, aggregate.Status())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
	mockOutbox.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_RejectsShippedOrder(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredConfirmedOrder(t)
	require.NoError(t, aggregate.MarkShipped(time.Now()))
	aggregate.ClearPendingEvents()

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), "too late")
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

	handler := commands.NewCancelOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	var invalidState *errs.InvalidStateError
	require.ErrorAs(t, err, &invalidState)
	assert.Equal(t, order.StatusShipped, aggregate.Status())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_ReleaseAllError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredOrder(t)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID(), "customer request")
	require.NoError(t, err)

	expectedError := errors.New("ledger unavailable")
	mockRepo := new(MockOrderRepository)
	mockLedger := new(MockStockLedger)
	mockUoW := new(MockStockUoW)
	mockFactory := new(MockStockUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		mockUoW.On("StockLedger").Return(mockLedger).Once(),
		mockLedger.On("ReleaseAll", ctx, aggregate.ID()).Return(expectedError).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelOrderCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.Equal(t, expectedError, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.CancelOrderCommand // zero value command

	mockFactory := new(MockStockUoWFactory)
	handler := commands.NewCancelOrderCommandHandler(mockFactory)

	// Act
	err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
}
