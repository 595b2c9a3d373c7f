package queries

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/pkg/guard"
)

var ErrTrackDeliveryQueryIsNotConstructed = errors.New(
	"TrackDeliveryQuery must be created via NewTrackDeliveryQuery constructor",
)

// TrackDeliveryQuery is the public, unauthenticated tracking lookup. The
// code is normalized and validated up front so malformed input never reaches
// the cache or the database.
type TrackDeliveryQuery struct { //nolint:recvcheck //using for validation
	trackingCode delivery.TrackingCode

	guard guard.ConstructorGuard
}

// NewTrackDeliveryQuery validates the raw tracking code and assembles the
// query.
func NewTrackDeliveryQuery(rawCode string) (TrackDeliveryQuery, error) {
	code, err := delivery.TrackingCodeFromString(rawCode)
	if err != nil {
		return TrackDeliveryQuery{}, err
	}

	return TrackDeliveryQuery{
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrTrackDeliveryQueryIsNotConstructed)
}

// TrackingCode returns the normalized code to look up.
func (q TrackDeliveryQuery) TrackingCode() delivery.TrackingCode { return q.trackingCode }

// TrackingPoint is a GeoJSON point. Coordinates are longitude first, which
// is the GeoJSON axis order, even though the domain stores named fields.
type TrackingPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// TrackingEvent is one public timeline entry.
type TrackingEvent struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Location  *TrackingPoint `json:"location,omitempty"`
	Note      string         `json:"note,omitempty"`
}

// TrackDeliveryQueryResponse is the public tracking page payload. It is
// what gets cached, so it must never carry internal notes, notification
// history, or customer contact details.
type TrackDeliveryQueryResponse struct {
	TrackingCode          string          `json:"trackingCode"`
	Status                string          `json:"status"`
	Priority              string          `json:"priority"`
	CustomerName          string          `json:"customerName"`
	PickupCity            string          `json:"pickupCity"`
	DeliveryCity          string          `json:"deliveryCity"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actualDeliveryTime,omitempty"`
	Events                []TrackingEvent `json:"events"`
}
