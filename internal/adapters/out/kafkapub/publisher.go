// Package kafkapub publishes delivery domain events to Kafka. Events are
// emitted after commit and are advisory; consumers must tolerate gaps.
package kafkapub

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"swiftdrop/internal/core/ports"
)

// Publisher implements ports.EventPublisher over a kafka-go writer. Events
// are keyed by delivery id so one delivery's events stay ordered within a
// partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishDeliveryStatusChanged writes one status-change event.
func (p *Publisher) PublishDeliveryStatusChanged(ctx context.Context, event ports.DeliveryStatusChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DeliveryID),
		Value: payload,
	})
}

// Close flushes and shuts down the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
