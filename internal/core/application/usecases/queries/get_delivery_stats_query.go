package queries

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
)

// GetDeliveryStatsQuery aggregates delivery counts by status plus delivered
// revenue. It carries no actor because the route exposing it is admin-only.
type GetDeliveryStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryStatsQuery creates the stats query.
func NewGetDeliveryStatsQuery() GetDeliveryStatsQuery {
	return GetDeliveryStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

// GetDeliveryStatsQueryResponse is the dashboard read model. StatusCounts
// only holds statuses that occur at least once.
type GetDeliveryStatsQueryResponse struct {
	Total            int64
	StatusCounts     map[string]int64
	DeliveredRevenue kernel.Money
	GeneratedAt      time.Time
}
