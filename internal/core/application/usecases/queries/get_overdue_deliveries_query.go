package queries

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetOverdueDeliveriesQueryIsNotConstructed = errors.New(
	"GetOverdueDeliveriesQuery must be created via NewGetOverdueDeliveriesQuery constructor",
)

// GetOverdueDeliveriesQuery finds active deliveries whose estimated
// delivery time has passed. The background sweep runs it periodically.
type GetOverdueDeliveriesQuery struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueDeliveriesQuery creates the query for a reference time.
func NewGetOverdueDeliveriesQuery(asOf time.Time) (GetOverdueDeliveriesQuery, error) {
	if asOf.IsZero() {
		return GetOverdueDeliveriesQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetOverdueDeliveriesQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueDeliveriesQueryIsNotConstructed)
}

// AsOf returns the reference time used for the overdue cutoff.
func (q GetOverdueDeliveriesQuery) AsOf() time.Time { return q.asOf }

// OverdueDelivery is one overdue row, most overdue first.
type OverdueDelivery struct {
	ID                    kernel.UUID
	TrackingCode          string
	Status                string
	CustomerName          string
	DriverID              *kernel.UUID
	EstimatedDeliveryTime time.Time
}
