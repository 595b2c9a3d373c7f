package kafkapub

import (
	"context"
	"log/slog"

	"swiftdrop/internal/core/ports"
)

// LogPublisher stands in for the Kafka publisher when no brokers are
// configured. It logs the would-be event so local environments still show
// the event flow.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher that only logs.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// PublishDeliveryStatusChanged logs the event instead of publishing it.
func (p *LogPublisher) PublishDeliveryStatusChanged(_ context.Context, event ports.DeliveryStatusChangedEvent) error {
	p.logger.Info("kafka disabled, skipping status change event",
		"deliveryId", event.DeliveryID,
		"trackingCode", event.TrackingCode,
		"from", event.From,
		"to", event.To)
	return nil
}
