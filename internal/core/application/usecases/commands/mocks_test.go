package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Shared testify mocks for the unit of work collaborators. Handlers only see
// the narrow interfaces from repositories.go, so one set of mocks serves all
// handler tests.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockSplitRepository struct{ mock.Mock }

func (m *MockSplitRepository) Add(ctx context.Context, split *order.Split) error {
	args := m.Called(ctx, split)
	return args.Error(0)
}

func (m *MockSplitRepository) GetByOriginalOrderID(ctx context.Context, id kernel.UUID) (*order.Split, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Split), args.Error(1)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) Reserve(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error {
	args := m.Called(ctx, productID, quantity, orderID)
	return args.Error(0)
}

func (m *MockStockLedger) Release(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error {
	args := m.Called(ctx, productID, quantity, orderID)
	return args.Error(0)
}

func (m *MockStockLedger) Commit(ctx context.Context, productID kernel.UUID, quantity int, orderID kernel.UUID) error {
	args := m.Called(ctx, productID, quantity, orderID)
	return args.Error(0)
}

func (m *MockStockLedger) ReleaseAll(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockStockLedger) CommitAll(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockEventOutbox struct{ mock.Mock }

func (m *MockEventOutbox) Publish(ctx context.Context, events []order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockDiscountResolver struct{ mock.Mock }

func (m *MockDiscountResolver) ValidateCoupon(
	ctx context.Context,
	couponID kernel.UUID,
	orderSubTotal kernel.Money,
	userID kernel.UUID,
) (kernel.Money, error) {
	args := m.Called(ctx, couponID, orderSubTotal, userID)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) Outbox() ports.EventOutbox {
	args := m.Called()
	return args.Get(0).(ports.EventOutbox)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockUoW struct {
	MockOrderUoW
}

func (m *MockStockUoW) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	args := m.Called()
	return args.Get(0).(commands.StockUoW)
}

type MockSplitUoW struct {
	MockStockUoW
}

func (m *MockSplitUoW) SplitRepository() ports.SplitRepository {
	args := m.Called()
	return args.Get(0).(ports.SplitRepository)
}

type MockSplitUoWFactory struct{ mock.Mock }

func (m *MockSplitUoWFactory) Create() commands.SplitUoW {
	args := m.Called()
	return args.Get(0).(commands.SplitUoW)
}
