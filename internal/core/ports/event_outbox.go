package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OutboxEvent is a domain event persisted to the transactional outbox,
// awaiting delivery to the message broker.
type OutboxEvent struct {
	ID          kernel.UUID
	EventName   string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredOn  time.Time
	Attempts    int
	SentAt      *time.Time
	LastError   string
}

// EventOutbox persists domain events inside the same transaction as the
// aggregate changes that produced them, giving consumers at-least-once
// delivery without dual writes.
type EventOutbox interface {
	// Publish serializes and stores the events. Must be called on an outbox
	// bound to the transaction saving the aggregate.
	Publish(ctx context.Context, events []order.Event) error
}

// OutboxStore is the relay-side view of the outbox table.
type OutboxStore interface {
	// LockBatch fetches up to limit unsent events in occurrence order and
	// locks them against concurrent relays.
	LockBatch(ctx context.Context, limit int) ([]OutboxEvent, error)

	// MarkSent records successful delivery of the given events.
	MarkSent(ctx context.Context, ids []kernel.UUID) error

	// MarkFailed records a delivery failure, incrementing the attempt counter.
	MarkFailed(ctx context.Context, id kernel.UUID, cause error) error
}

// EventDispatcher delivers outbox events to the message broker.
type EventDispatcher interface {
	// Dispatch publishes the events. Partial failures return an error; the
	// relay retries on the next run, so consumers must tolerate duplicates.
	Dispatch(ctx context.Context, events []OutboxEvent) error
}
