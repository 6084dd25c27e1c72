package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, including the optimistic concurrency check.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	splits     *orderrepo.GormSplitRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.VerificationDTO{},
		&orderrepo.SplitDTO{},
		&orderrepo.SplitOrderRefDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_splits CASCADE").Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
	suite.splits = orderrepo.NewGormSplitRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	price, err := kernel.MoneyFromString("50.00")
	suite.Require().NoError(err)
	_, err = aggregate.AddItem(kernel.NewUUID(), kernel.NewUUID(), 2, price)
	suite.Require().NoError(err)

	price, err = kernel.MoneyFromString("19.99")
	suite.Require().NoError(err)
	_, err = aggregate.AddItem(kernel.NewUUID(), kernel.NewUUID(), 1, price)
	suite.Require().NoError(err)

	verification, err := order.NewVerification(
		kernel.NewUUID(), aggregate.ID(), order.VerificationTypeAutomatic, 10, false)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachVerification(verification))

	aggregate.ClearPendingEvents()
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAggregate() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(aggregate.ID(), loaded.ID())
	suite.Equal(aggregate.UserID(), loaded.UserID())
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Equal(order.PaymentPending, loaded.PaymentStatus())
	suite.Equal(aggregate.Version(), loaded.Version())
	suite.Require().Len(loaded.Items(), 2)
	suite.True(aggregate.SubTotal().Equals(loaded.SubTotal()))
	suite.True(aggregate.TotalAmount().Equals(loaded.TotalAmount()))

	suite.Require().NotNil(loaded.Verification())
	suite.Equal(10, loaded.Verification().RiskScore())
	suite.Equal(order.VerificationTypeAutomatic, loaded.Verification().Type())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsChangesAndBumpsVersion() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Cancel("customer changed mind"))
	loaded.ClearPendingEvents()

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusCancelled, reloaded.Status())
	suite.Equal(loaded.Version()+1, reloaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// First update moves the stored row past the version this aggregate
	// was loaded with; the second write must lose.
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	err := suite.repository.Update(ctx, aggregate)

	suite.Require().Error(err)
	var conflict *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesItems() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	removed := loaded.Items()[0].ID()
	_, err = loaded.RemoveItem(removed)
	suite.Require().NoError(err)
	loaded.ClearPendingEvents()

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(reloaded.Items(), 1)
	suite.NotEqual(removed, reloaded.Items()[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPendingOlderThan_FiltersByStatusAndAge() {
	ctx := context.Background()

	stale := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, stale))
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET created_at = ? WHERE id = ?",
		time.Now().UTC().Add(-2*time.Hour), stale.ID().Bytes()).Error)

	fresh := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	cancelled := suite.createTestOrder()
	suite.Require().NoError(cancelled.Cancel("abandoned"))
	cancelled.ClearPendingEvents()
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET created_at = ? WHERE id = ?",
		time.Now().UTC().Add(-2*time.Hour), cancelled.ID().Bytes()).Error)

	result, err := suite.repository.GetPendingOlderThan(ctx, time.Now().UTC().Add(-time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(stale.ID(), result[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSplitRepository_RoundTrip() {
	ctx := context.Background()

	originalOrderID := kernel.NewUUID()
	splitOrderIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	split, err := order.NewSplit(kernel.NewUUID(), originalOrderID, splitOrderIDs, "multi-seller checkout")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.splits.Add(ctx, split))

	loaded, err := suite.splits.GetByOriginalOrderID(ctx, originalOrderID)
	suite.Require().NoError(err)
	suite.Equal(split.ID(), loaded.ID())
	suite.Equal(originalOrderID, loaded.OriginalOrderID())
	suite.Equal(splitOrderIDs, loaded.SplitOrderIDs())
	suite.Equal("multi-seller checkout", loaded.Reason())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSplitRepository_UnknownOrder_ReturnsNotFound() {
	_, err := suite.splits.GetByOriginalOrderID(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
