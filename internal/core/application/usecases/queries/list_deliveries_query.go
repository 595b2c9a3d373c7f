package queries

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListDeliveriesFilters narrows the listing. Zero values mean "no filter";
// Search matches tracking codes and customer names case-insensitively.
type ListDeliveriesFilters struct {
	Status   string
	Priority string
	Search   string
	Page     int
	PageSize int
}

// ListDeliveriesQuery retrieves a page of deliveries visible to the actor.
// Customers see their own deliveries, drivers the ones assigned to them,
// admins everything.
type ListDeliveriesQuery struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	actorRole account.Role
	status    *delivery.Status
	priority  *delivery.Priority
	search    string
	page      int
	pageSize  int

	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery validates the filters and assembles the query.
// Unknown status or priority values are rejected rather than ignored.
func NewListDeliveriesQuery(
	actorID kernel.UUID,
	actorRole account.Role,
	filters ListDeliveriesFilters,
) (ListDeliveriesQuery, error) {
	if err := errors.Join(
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return ListDeliveriesQuery{}, err
	}

	q := ListDeliveriesQuery{
		actorID:   actorID,
		actorRole: actorRole,
		search:    filters.Search,
		page:      filters.Page,
		pageSize:  filters.PageSize,
		guard:     guard.NewConstructorGuard(),
	}

	if filters.Status != "" {
		status, err := delivery.ParseStatus(filters.Status)
		if err != nil {
			return ListDeliveriesQuery{}, err
		}
		q.status = &status
	}
	if filters.Priority != "" {
		priority, err := delivery.ParsePriority(filters.Priority)
		if err != nil {
			return ListDeliveriesQuery{}, err
		}
		q.priority = &priority
	}

	if q.page < 1 {
		q.page = 1
	}
	if q.pageSize < 1 {
		q.pageSize = defaultPageSize
	}
	if q.pageSize > maxPageSize {
		q.pageSize = maxPageSize
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// DeliverySummary is one row of the listing read model.
type DeliverySummary struct {
	ID                    kernel.UUID
	TrackingCode          string
	Status                string
	Priority              string
	CustomerName          string
	PickupCity            string
	DeliveryCity          string
	DriverID              *kernel.UUID
	Price                 kernel.Money
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
}

// ListDeliveriesQueryResponse is the paged listing, newest first. Total is
// the full match count, not the page length.
type ListDeliveriesQueryResponse struct {
	Deliveries []DeliverySummary
	Total      int64
	Page       int
	PageSize   int
}
