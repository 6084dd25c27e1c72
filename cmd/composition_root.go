package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/discountrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) splitUoWFactory() commands.SplitUoWFactory {
	return FuncSplitUoWFactory(func() commands.SplitUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) approvalPolicy() order.ApprovalPolicy {
	if c.config.RiskAutoApproveThreshold > 0 {
		return order.ApprovalPolicy{AutoApproveRiskThreshold: c.config.RiskAutoApproveThreshold}
	}
	return order.DefaultApprovalPolicy()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddItemCommandHandler() commands.AddItemCommandHandler {
	return commands.NewAddItemCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler() commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateUpdateItemQuantityCommandHandler() commands.UpdateItemQuantityCommandHandler {
	return commands.NewUpdateItemQuantityCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateApplyCouponCommandHandler() commands.ApplyCouponCommandHandler {
	resolver := discountrepo.NewGormDiscountResolver(c.gormDB)
	return commands.NewApplyCouponCommandHandler(c.orderUoWFactory(), resolver)
}

func (c *CompositionRoot) CreateRemoveCouponCommandHandler() commands.RemoveCouponCommandHandler {
	return commands.NewRemoveCouponCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyGiftCardCommandHandler() commands.ApplyGiftCardCommandHandler {
	return commands.NewApplyGiftCardCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangePaymentStatusCommandHandler() commands.ChangePaymentStatusCommandHandler {
	return commands.NewChangePaymentStatusCommandHandler(c.orderUoWFactory(), c.approvalPolicy())
}

func (c *CompositionRoot) CreatePutOnHoldCommandHandler() commands.PutOnHoldCommandHandler {
	return commands.NewPutOnHoldCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResumeOrderCommandHandler() commands.ResumeOrderCommandHandler {
	return commands.NewResumeOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApproveVerificationCommandHandler() commands.ApproveVerificationCommandHandler {
	return commands.NewApproveVerificationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRejectVerificationCommandHandler() commands.RejectVerificationCommandHandler {
	return commands.NewRejectVerificationCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateMarkShippedCommandHandler() commands.MarkShippedCommandHandler {
	return commands.NewMarkShippedCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	return commands.NewRefundOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSplitOrderCommandHandler() (commands.SplitOrderCommandHandler, error) {
	splitter, err := services.NewOrderSplitter()
	if err != nil {
		return commands.SplitOrderCommandHandler{}, err
	}
	return commands.NewSplitOrderCommandHandler(c.splitUoWFactory(), splitter), nil
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the outbox relay and stale order cleanup jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	writer := kafka.NewWriter([]string{c.config.KafkaHost}, c.config.KafkaOrderEventsTopic)
	dispatcher := kafka.NewDispatcher(c.logger, writer)
	store := outboxrepo.NewGormOutboxStore(c.gormDB)
	orderRepo := orderrepo.NewGormOrderRepository(c.gormDB)

	return jobs.NewJobManager(
		store,
		dispatcher,
		orderRepo,
		c.CreateCancelOrderCommandHandler(),
		c.config.StaleOrderTTL,
		c.logger,
	)
}

// CreateHTTPServer wires all command and query handlers into the REST server.
func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	splitOrderHandler, err := c.CreateSplitOrderCommandHandler()
	if err != nil {
		return nil, err
	}

	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAddItemCommandHandler(),
		c.CreateRemoveItemCommandHandler(),
		c.CreateUpdateItemQuantityCommandHandler(),
		c.CreateApplyCouponCommandHandler(),
		c.CreateRemoveCouponCommandHandler(),
		c.CreateApplyGiftCardCommandHandler(),
		c.CreateChangePaymentStatusCommandHandler(),
		c.CreatePutOnHoldCommandHandler(),
		c.CreateResumeOrderCommandHandler(),
		c.CreateApproveVerificationCommandHandler(),
		c.CreateRejectVerificationCommandHandler(),
		c.CreateMarkShippedCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateRefundOrderCommandHandler(),
		splitOrderHandler,
		c.CreateGetOrderQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
	), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}

type FuncSplitUoWFactory func() commands.SplitUoW

func (f FuncSplitUoWFactory) Create() commands.SplitUoW {
	return f()
}
