package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyCouponCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredOrder(t)
	couponID := kernel.NewUUID()
	discount := mustMoney(t, "10.00")

	cmd, err := commands.NewApplyCouponCommand(aggregate.ID(), couponID)
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockResolver := new(MockDiscountResolver)
	mockOutbox := new(MockEventOutbox)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)

	// Set up expectations in order
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		mockResolver.On("ValidateCoupon", ctx, couponID, aggregate.SubTotal(), aggregate.UserID()).
			Return(discount, nil).Once(),
		mockRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		mockUoW.On("Outbox").Return(mockOutbox).Once(),
		mockOutbox.On("Publish", ctx, mock.AnythingOfType("[]order.Event")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewApplyCouponCommandHandler(mockFactory, mockResolver)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, aggregate.CouponID())
	assert.Equal(t, couponID, *aggregate.CouponID())
	assert.True(t, aggregate.CouponDiscount().Equals(discount))
	assert.True(t, aggregate.TotalAmount().Equals(mustMoney(t, "90.00")))
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockResolver.AssertExpectations(t)
	mockOutbox.AssertExpectations(t)
}

func TestApplyCouponCommandHandler_Handle_DiscountRejected(t *testing.T) {
	// Arrange
	ctx := t.Context()
	aggregate := newStoredOrder(t)
	couponID := kernel.NewUUID()

	cmd, err := commands.NewApplyCouponCommand(aggregate.ID(), couponID)
	require.NoError(t, err)

	rejection := errs.NewDiscountRejectedError(couponID.String(), errs.DiscountRejectionExpired)
	mockRepo := new(MockOrderRepository)
	mockResolver := new(MockDiscountResolver)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)

	// A rejected coupon never touches the order; nothing is persisted.
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		mockResolver.On("ValidateCoupon", ctx, couponID, aggregate.SubTotal(), aggregate.UserID()).
			Return(kernel.ZeroMoney(), rejection).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewApplyCouponCommandHandler(mockFactory, mockResolver)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	var rejected *errs.DiscountRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Nil(t, aggregate.CouponID())
	assert.True(t, aggregate.CouponDiscount().IsZero())
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockResolver.AssertExpectations(t)
}

func TestApplyCouponCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.ApplyCouponCommand // zero value command

	mockResolver := new(MockDiscountResolver)
	mockFactory := new(MockOrderUoWFactory)
	handler := commands.NewApplyCouponCommandHandler(mockFactory, mockResolver)

	// Act
	err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrApplyCouponCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
	mockResolver.AssertExpectations(t)
}
