package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/ports"
)

// trackingCacheTTL bounds staleness for hits that race a status change
// between invalidation and re-population.
const trackingCacheTTL = 5 * time.Minute

// TrackDeliveryQueryHandler serves the public tracking lookup through a
// cache-aside read. Cache failures fall back to the database silently.
type TrackDeliveryQueryHandler struct {
	deliveries ports.DeliveryRepository
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewTrackDeliveryQueryHandler creates a handler for public tracking
// queries.
func NewTrackDeliveryQueryHandler(
	deliveries ports.DeliveryRepository,
	cache ports.TrackingCache,
	logger *slog.Logger,
) TrackDeliveryQueryHandler {
	return TrackDeliveryQueryHandler{
		deliveries: deliveries,
		cache:      cache,
		logger:     logger,
	}
}

// Handle returns the public tracking payload for a code.
func (h TrackDeliveryQueryHandler) Handle(
	ctx context.Context,
	query TrackDeliveryQuery,
) (TrackDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	code := query.TrackingCode().String()

	if payload, ok := h.cache.Get(ctx, code); ok {
		var cached TrackDeliveryQueryResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		h.logger.Warn("discarding unreadable tracking cache entry", "trackingCode", code)
	}

	aggregate, err := h.deliveries.GetByTrackingCode(ctx, query.TrackingCode())
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	response := buildTrackingResponse(aggregate)

	if payload, err := json.Marshal(response); err == nil {
		if err := h.cache.Set(ctx, code, payload, trackingCacheTTL); err != nil {
			h.logger.Warn("failed to cache tracking response",
				"trackingCode", code, "error", err)
		}
	}

	return response, nil
}

func buildTrackingResponse(aggregate *delivery.Delivery) TrackDeliveryQueryResponse {
	entries := aggregate.Timeline().Entries()
	events := make([]TrackingEvent, 0, len(entries))
	for _, entry := range entries {
		event := TrackingEvent{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
		}
		if location := entry.Location(); location != nil {
			event.Location = &TrackingPoint{
				Type:        "Point",
				Coordinates: [2]float64{location.Longitude(), location.Latitude()},
			}
		}
		events = append(events, event)
	}

	return TrackDeliveryQueryResponse{
		TrackingCode:          aggregate.TrackingCode().String(),
		Status:                aggregate.Status().String(),
		Priority:              aggregate.Priority().String(),
		CustomerName:          aggregate.CustomerName(),
		PickupCity:            aggregate.PickupAddress().City(),
		DeliveryCity:          aggregate.DeliveryAddress().City(),
		EstimatedDeliveryTime: aggregate.EstimatedDeliveryTime(),
		ActualDeliveryTime:    aggregate.ActualDeliveryTime(),
		Events:                events,
	}
}
