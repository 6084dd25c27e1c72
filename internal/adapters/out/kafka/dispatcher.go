package kafka

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Dispatcher implements EventDispatcher over a Kafka producer.
type Dispatcher struct {
	log      *slog.Logger
	producer Producer
}

// NewDispatcher creates a dispatcher publishing through the given producer.
func NewDispatcher(log *slog.Logger, producer Producer) *Dispatcher {
	return &Dispatcher{log: log, producer: producer}
}

// Dispatch publishes the events in one batch. The batch either fully
// succeeds or the relay retries it; consumers must tolerate duplicates.
func (d *Dispatcher) Dispatch(ctx context.Context, events []ports.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		messages = append(messages, kafka.Message{
			Key:   []byte(event.AggregateID.String()),
			Value: event.Payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventName)},
				{Key: "event_id", Value: []byte(event.ID.String())},
			},
		})
	}

	if err := d.producer.WriteMessages(ctx, messages...); err != nil {
		d.log.Error("event dispatch failed", "count", len(events), "err", err)
		return err
	}

	d.log.Debug("events dispatched", "count", len(events))
	return nil
}
