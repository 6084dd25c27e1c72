package kafka_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	kafkaadapter "marketplace/internal/adapters/out/kafka"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	messages []segmentio.Message
	err      error
}

func (p *fakeProducer) WriteMessages(_ context.Context, msgs ...segmentio.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msgs...)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDispatcher_Dispatch_Success(t *testing.T) {
	// Arrange
	producer := &fakeProducer{}
	dispatcher := kafkaadapter.NewDispatcher(testLogger(), producer)

	aggregateID := kernel.NewUUID()
	eventID := kernel.NewUUID()
	events := []ports.OutboxEvent{
		{
			ID:          eventID,
			EventName:   "order.created",
			AggregateID: aggregateID,
			Payload:     []byte(`{"order_id":"x"}`),
			OccurredOn:  time.Now().UTC(),
		},
	}

	// Act
	err := dispatcher.Dispatch(context.Background(), events)

	// Assert
	require.NoError(t, err)
	require.Len(t, producer.messages, 1)

	message := producer.messages[0]
	assert.Equal(t, []byte(aggregateID.String()), message.Key)
	assert.Equal(t, []byte(`{"order_id":"x"}`), message.Value)

	headers := map[string]string{}
	for _, header := range message.Headers {
		headers[header.Key] = string(header.Value)
	}
	assert.Equal(t, "order.created", headers["event_type"])
	assert.Equal(t, eventID.String(), headers["event_id"])
}

func TestDispatcher_Dispatch_EmptyBatchSkipsProducer(t *testing.T) {
	// Arrange
	producer := &fakeProducer{}
	dispatcher := kafkaadapter.NewDispatcher(testLogger(), producer)

	// Act
	err := dispatcher.Dispatch(context.Background(), nil)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, producer.messages)
}

func TestDispatcher_Dispatch_ProducerError(t *testing.T) {
	// Arrange
	producer := &fakeProducer{err: assert.AnError}
	dispatcher := kafkaadapter.NewDispatcher(testLogger(), producer)

	events := []ports.OutboxEvent{
		{
			ID:          kernel.NewUUID(),
			EventName:   "order.cancelled",
			AggregateID: kernel.NewUUID(),
			Payload:     []byte(`{}`),
			OccurredOn:  time.Now().UTC(),
		},
	}

	// Act
	err := dispatcher.Dispatch(context.Background(), events)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, assert.AnError)
}
