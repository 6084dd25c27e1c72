// Package kafka delivers outbox events to a Kafka topic. Messages are keyed
// by aggregate id so all events of one order land on the same partition and
// consumers see them in order.
package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Producer abstracts the Kafka writer for testing.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewWriter creates a Kafka writer for the given brokers and topic.
// Writes wait for acks from all in-sync replicas.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}
