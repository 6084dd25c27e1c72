package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// staleOrderCancelReason is recorded on orders cancelled by the cleanup job.
const staleOrderCancelReason = "abandoned: order stayed pending past the allowed age"

// StaleOrderJob cancels orders that stayed Pending longer than the configured
// TTL, releasing their stock reservations. Runs every minute.
type StaleOrderJob struct {
	orders  ports.OrderRepository
	handler commands.CancelOrderCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderJob creates a new job cancelling pending orders older than ttl.
func NewStaleOrderJob(
	orders ports.OrderRepository,
	handler commands.CancelOrderCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		orders:  orders,
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_order_job"),
	}
}

// Start begins the stale order job to run every minute.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		if err := j.cancelStaleOrders(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale order run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started (running every minute)")
	return nil
}

// Stop stops the stale order job.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}

func (j *StaleOrderJob) cancelStaleOrders(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.ttl)

	stale, err := j.orders.GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, aggregate := range stale {
		cmd, cmdErr := commands.NewCancelOrderCommand(aggregate.ID(), staleOrderCancelReason)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build cancel command",
				"order_id", aggregate.ID().String(), "error", cmdErr)
			continue
		}

		// Each order cancels in its own transaction; one conflict does not
		// block the rest of the batch.
		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Failed to cancel stale order",
				"order_id", aggregate.ID().String(), "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Cancelled stale order",
			"order_id", aggregate.ID().String(), "age", time.Since(aggregate.CreatedAt()).String())
	}

	return nil
}
