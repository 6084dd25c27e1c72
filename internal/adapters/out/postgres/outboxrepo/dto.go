// Package outboxrepo implements the transactional event outbox on
// PostgreSQL. Events are inserted in the same transaction as the aggregate
// change that produced them and relayed to the broker asynchronously.
package outboxrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxEventDTO represents a persisted outbox event awaiting delivery.
type OutboxEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventName   string    `gorm:"index"`
	AggregateID uuid.UUID `gorm:"type:uuid;index"`
	Payload     []byte    `gorm:"type:jsonb"`
	OccurredOn  time.Time `gorm:"index"`
	Attempts    int
	SentAt      *time.Time `gorm:"index"`
	LastError   string
}

// TableName specifies the database table name for outbox events.
func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

func toPort(dto OutboxEventDTO) (ports.OutboxEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxEvent{}, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxEvent{}, err
	}

	return ports.OutboxEvent{
		ID:          id,
		EventName:   dto.EventName,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		OccurredOn:  dto.OccurredOn,
		Attempts:    dto.Attempts,
		SentAt:      dto.SentAt,
		LastError:   dto.LastError,
	}, nil
}
