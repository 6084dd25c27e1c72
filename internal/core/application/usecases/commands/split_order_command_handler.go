package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// SplitOrderCommandHandler divides an order into per-group sub-orders using
// the split coordinator. The original order, the new orders, the split
// record, and the moved stock reservations are written in one transaction.
type SplitOrderCommandHandler struct {
	uowFactory SplitUoWFactory
	splitter   *services.OrderSplitter
}

// NewSplitOrderCommandHandler creates a handler for order splits.
func NewSplitOrderCommandHandler(
	uowFactory SplitUoWFactory,
	splitter *services.OrderSplitter,
) SplitOrderCommandHandler {
	return SplitOrderCommandHandler{
		uowFactory: uowFactory,
		splitter:   splitter,
	}
}

// Handle processes the split command.
// Stock reservations follow the items: the original's hold is released for
// each moved quantity before the split order reserves it, so a split touching
// the last available units still finds them free. Total reserved stock is
// unchanged once the transaction commits.
func (h *SplitOrderCommandHandler) Handle(ctx context.Context, cmd SplitOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	original, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignments := cmd.Assignments()
	grouping := func(item *order.Item) string {
		return assignments[item.ProductID()]
	}

	split, splitOrders, err := h.splitter.Split(original, grouping, cmd.Reason())
	if err != nil {
		return err
	}

	ledger := uow.StockLedger()
	outbox := uow.Outbox()
	for _, splitOrder := range splitOrders {
		if err = orderRepo.Add(ctx, splitOrder); err != nil {
			return err
		}
		for _, item := range splitOrder.Items() {
			if err = ledger.Release(ctx, item.ProductID(), item.Quantity(), original.ID()); err != nil {
				return err
			}
			if err = ledger.Reserve(ctx, item.ProductID(), item.Quantity(), splitOrder.ID()); err != nil {
				return err
			}
		}
		if err = outbox.Publish(ctx, splitOrder.PendingEvents()); err != nil {
			return err
		}
		splitOrder.ClearPendingEvents()
	}

	if err = uow.SplitRepository().Add(ctx, split); err != nil {
		return err
	}

	if err = saveOrder(ctx, orderRepo, outbox, original); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
