package ports

import (
	"context"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
)

// DeliveryStatusChangedEvent is emitted after a status transition has been
// committed.
type DeliveryStatusChangedEvent struct {
	DeliveryID   string    `json:"deliveryId"`
	TrackingCode string    `json:"trackingCode"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewDeliveryStatusChangedEvent builds the event from a transitioned
// aggregate.
func NewDeliveryStatusChangedEvent(aggregate *delivery.Delivery, from delivery.Status, occurredAt time.Time) DeliveryStatusChangedEvent {
	return DeliveryStatusChangedEvent{
		DeliveryID:   aggregate.ID().String(),
		TrackingCode: aggregate.TrackingCode().String(),
		From:         from.String(),
		To:           aggregate.Status().String(),
		OccurredAt:   occurredAt,
	}
}

// EventPublisher pushes domain events to the message broker. Publishing is
// best effort after commit; a failed publish is logged, never propagated.
type EventPublisher interface {
	PublishDeliveryStatusChanged(ctx context.Context, event DeliveryStatusChangedEvent) error
}
