package queries

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
)

// ListDeliveriesQueryHandler pages through deliveries with raw SQL. Address
// cities are pulled straight out of the jsonb columns so the listing never
// hydrates full aggregates.
type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesQueryHandler creates a handler for delivery listings.
func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

// Handle executes the listing. Results are ordered newest first and Total
// reflects the unpaged match count.
func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) (ListDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListDeliveriesQueryResponse{}, err
	}

	where, args := buildListFilter(query)

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM deliveries"+where, args...).
		Scan(&total).Error
	if err != nil {
		return ListDeliveriesQueryResponse{}, err
	}

	pageArgs := append(args, query.pageSize, (query.page-1)*query.pageSize)
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			priority,
			customer_name,
			pickup_address->>'city',
			delivery_address->>'city',
			driver_id,
			price,
			estimated_delivery_time,
			created_at
		FROM deliveries`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return ListDeliveriesQueryResponse{}, err
	}
	defer rows.Close()

	deliveries := make([]DeliverySummary, 0, query.pageSize)
	for rows.Next() {
		var summary DeliverySummary
		var id uuid.UUID
		var driverID *uuid.UUID
		var estimated *time.Time

		err = rows.Scan(
			&id,
			&summary.TrackingCode,
			&summary.Status,
			&summary.Priority,
			&summary.CustomerName,
			&summary.PickupCity,
			&summary.DeliveryCity,
			&driverID,
			&summary.Price,
			&estimated,
			&summary.CreatedAt,
		)
		if err != nil {
			return ListDeliveriesQueryResponse{}, err
		}

		summaryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListDeliveriesQueryResponse{}, idErr
		}
		summary.ID = summaryID

		if driverID != nil {
			converted, idErr := kernel.UUIDFromBytes(driverID[:])
			if idErr != nil {
				return ListDeliveriesQueryResponse{}, idErr
			}
			summary.DriverID = &converted
		}
		summary.EstimatedDeliveryTime = estimated

		deliveries = append(deliveries, summary)
	}
	if err = rows.Err(); err != nil {
		return ListDeliveriesQueryResponse{}, err
	}

	return ListDeliveriesQueryResponse{
		Deliveries: deliveries,
		Total:      total,
		Page:       query.page,
		PageSize:   query.pageSize,
	}, nil
}

// buildListFilter assembles the shared WHERE clause for the count and page
// queries. Role scoping comes first so a filter can never widen visibility.
func buildListFilter(query ListDeliveriesQuery) (string, []any) {
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 5)

	switch query.actorRole {
	case account.RoleCustomer:
		clauses = append(clauses, "customer_id = ?")
		args = append(args, query.actorID.Bytes())
	case account.RoleDriver:
		clauses = append(clauses, "driver_id = ?")
		args = append(args, query.actorID.Bytes())
	case account.RoleAdmin:
	}

	if query.status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, query.status.String())
	}
	if query.priority != nil {
		clauses = append(clauses, "priority = ?")
		args = append(args, query.priority.String())
	}
	if query.search != "" {
		clauses = append(clauses, "(tracking_code ILIKE ? OR customer_name ILIKE ?)")
		pattern := "%" + query.search + "%"
		args = append(args, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
