package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	addItemHandler             commands.AddItemCommandHandler
	removeItemHandler          commands.RemoveItemCommandHandler
	updateItemQuantityHandler  commands.UpdateItemQuantityCommandHandler
	applyCouponHandler         commands.ApplyCouponCommandHandler
	removeCouponHandler        commands.RemoveCouponCommandHandler
	applyGiftCardHandler       commands.ApplyGiftCardCommandHandler
	changePaymentStatusHandler commands.ChangePaymentStatusCommandHandler
	putOnHoldHandler           commands.PutOnHoldCommandHandler
	resumeOrderHandler         commands.ResumeOrderCommandHandler
	approveVerificationHandler commands.ApproveVerificationCommandHandler
	rejectVerificationHandler  commands.RejectVerificationCommandHandler
	markShippedHandler         commands.MarkShippedCommandHandler
	markDeliveredHandler       commands.MarkDeliveredCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	refundOrderHandler         commands.RefundOrderCommandHandler
	splitOrderHandler          commands.SplitOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addItemHandler commands.AddItemCommandHandler,
	removeItemHandler commands.RemoveItemCommandHandler,
	updateItemQuantityHandler commands.UpdateItemQuantityCommandHandler,
	applyCouponHandler commands.ApplyCouponCommandHandler,
	removeCouponHandler commands.RemoveCouponCommandHandler,
	applyGiftCardHandler commands.ApplyGiftCardCommandHandler,
	changePaymentStatusHandler commands.ChangePaymentStatusCommandHandler,
	putOnHoldHandler commands.PutOnHoldCommandHandler,
	resumeOrderHandler commands.ResumeOrderCommandHandler,
	approveVerificationHandler commands.ApproveVerificationCommandHandler,
	rejectVerificationHandler commands.RejectVerificationCommandHandler,
	markShippedHandler commands.MarkShippedCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	refundOrderHandler commands.RefundOrderCommandHandler,
	splitOrderHandler commands.SplitOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		addItemHandler:             addItemHandler,
		removeItemHandler:          removeItemHandler,
		updateItemQuantityHandler:  updateItemQuantityHandler,
		applyCouponHandler:         applyCouponHandler,
		removeCouponHandler:        removeCouponHandler,
		applyGiftCardHandler:       applyGiftCardHandler,
		changePaymentStatusHandler: changePaymentStatusHandler,
		putOnHoldHandler:           putOnHoldHandler,
		resumeOrderHandler:         resumeOrderHandler,
		approveVerificationHandler: approveVerificationHandler,
		rejectVerificationHandler:  rejectVerificationHandler,
		markShippedHandler:         markShippedHandler,
		markDeliveredHandler:       markDeliveredHandler,
		cancelOrderHandler:         cancelOrderHandler,
		refundOrderHandler:         refundOrderHandler,
		splitOrderHandler:          splitOrderHandler,
		getOrderHandler:            getOrderHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
	}
}

// RegisterRoutes wires all order endpoints under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderID", s.GetOrder)

	api.POST("/orders/:orderID/items", s.AddItem)
	api.DELETE("/orders/:orderID/items/:itemID", s.RemoveItem)
	api.PATCH("/orders/:orderID/items/:itemID", s.UpdateItemQuantity)

	api.POST("/orders/:orderID/coupon", s.ApplyCoupon)
	api.DELETE("/orders/:orderID/coupon", s.RemoveCoupon)
	api.POST("/orders/:orderID/gift-card", s.ApplyGiftCard)

	api.POST("/orders/:orderID/payment-status", s.ChangePaymentStatus)
	api.POST("/orders/:orderID/hold", s.PutOnHold)
	api.POST("/orders/:orderID/resume", s.ResumeOrder)
	api.POST("/orders/:orderID/verification/approve", s.ApproveVerification)
	api.POST("/orders/:orderID/verification/reject", s.RejectVerification)
	api.POST("/orders/:orderID/ship", s.MarkShipped)
	api.POST("/orders/:orderID/deliver", s.MarkDelivered)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/refund", s.RefundOrder)
	api.POST("/orders/:orderID/split", s.SplitOrder)
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderID"))
}

func parseMoney(value string) (kernel.Money, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(amount)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(request.UserID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, userID, request.RiskScore, request.RequiresManualReview)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:               result.ID.String(),
		UserID:           result.UserID.String(),
		Status:           result.Status,
		PaymentStatus:    result.PaymentStatus,
		SubTotal:         result.SubTotal,
		ShippingCost:     result.ShippingCost,
		Tax:              result.Tax,
		CouponDiscount:   result.CouponDiscount,
		GiftCardDiscount: result.GiftCardDiscount,
		TotalAmount:      result.TotalAmount,
		RefundedAmount:   result.RefundedAmount,
		Version:          result.Version,
		Items:            items,
	})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, item := range orders {
		response[i] = ActiveOrderResponse{
			ID:            item.ID.String(),
			UserID:        item.UserID.String(),
			Status:        item.Status,
			PaymentStatus: item.PaymentStatus,
			TotalAmount:   item.TotalAmount,
			ItemCount:     item.ItemCount,
			CreatedAt:     item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddItem handles POST /api/v1/orders/:orderID/items.
func (s *Server) AddItem(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request AddItemRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return respondError(ctx, err)
	}

	unitPrice, err := parseMoney(request.UnitPrice)
	if err != nil {
		return respondBadRequest(ctx, "Invalid unit price: "+err.Error())
	}

	cmd, err := commands.NewAddItemCommand(orderID, productID, request.Quantity, unitPrice)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.addItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveItem handles DELETE /api/v1/orders/:orderID/items/:itemID.
func (s *Server) RemoveItem(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemID"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveItemCommand(orderID, itemID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.removeItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateItemQuantity handles PATCH /api/v1/orders/:orderID/items/:itemID.
func (s *Server) UpdateItemQuantity(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("itemID"))
	if err != nil {
		return respondError(ctx, err)
	}

	var request UpdateItemQuantityRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateItemQuantityCommand(orderID, itemID, request.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateItemQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyCoupon handles POST /api/v1/orders/:orderID/coupon.
func (s *Server) ApplyCoupon(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ApplyCouponRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	couponID, err := kernel.UUIDFromString(request.CouponID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewApplyCouponCommand(orderID, couponID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.applyCouponHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCoupon handles DELETE /api/v1/orders/:orderID/coupon.
func (s *Server) RemoveCoupon(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveCouponCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.removeCouponHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyGiftCard handles POST /api/v1/orders/:orderID/gift-card.
func (s *Server) ApplyGiftCard(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ApplyGiftCardRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	amount, err := parseMoney(request.Amount)
	if err != nil {
		return respondBadRequest(ctx, "Invalid amount: "+err.Error())
	}

	cmd, err := commands.NewApplyGiftCardCommand(orderID, amount)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.applyGiftCardHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangePaymentStatus handles POST /api/v1/orders/:orderID/payment-status.
// Payment providers call it from their webhook integrations.
func (s *Server) ChangePaymentStatus(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ChangePaymentStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	status, err := order.PaymentStatusFromString(request.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangePaymentStatusCommand(orderID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.changePaymentStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PutOnHold handles POST /api/v1/orders/:orderID/hold.
func (s *Server) PutOnHold(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ReasonRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewPutOnHoldCommand(orderID, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.putOnHoldHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResumeOrder handles POST /api/v1/orders/:orderID/resume.
func (s *Server) ResumeOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewResumeOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.resumeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApproveVerification handles POST /api/v1/orders/:orderID/verification/approve.
func (s *Server) ApproveVerification(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewApproveVerificationCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.approveVerificationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectVerification handles POST /api/v1/orders/:orderID/verification/reject.
func (s *Server) RejectVerification(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRejectVerificationCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.rejectVerificationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkShipped handles POST /api/v1/orders/:orderID/ship.
func (s *Server) MarkShipped(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ShipRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkShippedCommand(orderID, request.ShippedAt)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.markShippedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/orders/:orderID/deliver.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request DeliverRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, request.DeliveredAt)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request ReasonRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, request.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefundOrder handles POST /api/v1/orders/:orderID/refund.
func (s *Server) RefundOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request RefundRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	amount, err := parseMoney(request.Amount)
	if err != nil {
		return respondBadRequest(ctx, "Invalid amount: "+err.Error())
	}

	cmd, err := commands.NewRefundOrderCommand(orderID, amount)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.refundOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SplitOrder handles POST /api/v1/orders/:orderID/split.
func (s *Server) SplitOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var request SplitOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	assignments := make(map[kernel.UUID]string, len(request.Assignments))
	for productID, group := range request.Assignments {
		id, parseErr := kernel.UUIDFromString(productID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		assignments[id] = group
	}

	cmd, err := commands.NewSplitOrderCommand(orderID, request.Reason, assignments)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.splitOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
