package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventOutbox implements EventOutbox using GORM. It must be constructed
// over the transaction that saves the aggregate, never over the root
// connection, or events can outlive a rolled back write.
type GormEventOutbox struct {
	db *gorm.DB
}

// NewGormEventOutbox creates an outbox bound to the given connection.
func NewGormEventOutbox(db *gorm.DB) *GormEventOutbox {
	return &GormEventOutbox{db: db}
}

// Publish serializes the events to JSON and inserts them into the outbox.
func (o *GormEventOutbox) Publish(ctx context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxEventDTO, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		dtos = append(dtos, OutboxEventDTO{
			ID:          kernel.NewUUID().Bytes(),
			EventName:   event.EventName(),
			AggregateID: event.AggregateID(),
			Payload:     payload,
			OccurredOn:  event.OccurredOn(),
		})
	}

	return o.db.WithContext(ctx).Create(&dtos).Error
}

// GormOutboxStore implements OutboxStore using GORM. Used by the relay job.
type GormOutboxStore struct {
	db *gorm.DB
}

// NewGormOutboxStore creates a new GORM outbox store.
func NewGormOutboxStore(db *gorm.DB) *GormOutboxStore {
	return &GormOutboxStore{db: db}
}

// LockBatch fetches up to limit unsent events in occurrence order.
// SKIP LOCKED lets multiple relay instances drain the table without
// double-delivering within one pass.
func (s *GormOutboxStore) LockBatch(ctx context.Context, limit int) ([]ports.OutboxEvent, error) {
	var dtos []OutboxEventDTO
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			id,
			event_name,
			aggregate_id,
			payload,
			occurred_on,
			attempts,
			sent_at,
			last_error
		FROM outbox_events
		WHERE sent_at IS NULL
		ORDER BY occurred_on
		LIMIT ?
		FOR UPDATE SKIP LOCKED
	`, limit).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]ports.OutboxEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, portErr := toPort(dto)
		if portErr != nil {
			return nil, portErr
		}
		events = append(events, event)
	}

	return events, nil
}

// MarkSent records successful delivery of the given events.
func (s *GormOutboxStore) MarkSent(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	now := time.Now()
	return s.db.WithContext(ctx).Model(&OutboxEventDTO{}).
		Where("id IN ?", raw).
		Updates(map[string]any{
			"sent_at":    &now,
			"last_error": "",
		}).Error
}

// MarkFailed records a delivery failure and bumps the attempt counter.
func (s *GormOutboxStore) MarkFailed(ctx context.Context, id kernel.UUID, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}

	return s.db.WithContext(ctx).Model(&OutboxEventDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": message,
		}).Error
}
