package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// relayBatchSize caps how many outbox events one relay run delivers.
const relayBatchSize = 100

// OutboxRelayJob drains the transactional outbox to the message broker.
// Runs every second so events reach consumers within a second of commit.
type OutboxRelayJob struct {
	store      ports.OutboxStore
	dispatcher ports.EventDispatcher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOutboxRelayJob creates a new job relaying outbox events through the
// given dispatcher.
func NewOutboxRelayJob(store ports.OutboxStore, dispatcher ports.EventDispatcher, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		store:      store,
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the outbox relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if err := j.relayBatch(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the outbox relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) relayBatch(ctx context.Context) error {
	events, err := j.store.LockBatch(ctx, relayBatchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	if dispatchErr := j.dispatcher.Dispatch(ctx, events); dispatchErr != nil {
		for _, event := range events {
			if markErr := j.store.MarkFailed(ctx, event.ID, dispatchErr); markErr != nil {
				j.logger.ErrorContext(ctx, "Failed to record delivery failure",
					"event_id", event.ID.String(), "error", markErr)
			}
		}
		return dispatchErr
	}

	ids := make([]kernel.UUID, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}

	return j.store.MarkSent(ctx, ids)
}
