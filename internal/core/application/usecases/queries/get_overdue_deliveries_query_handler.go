package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swiftdrop/internal/core/domain/model/kernel"
)

// GetOverdueDeliveriesQueryHandler scans for deliveries past their
// estimated delivery time that are still in flight.
type GetOverdueDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueDeliveriesQueryHandler creates a handler for overdue sweeps.
func NewGetOverdueDeliveriesQueryHandler(db *gorm.DB) GetOverdueDeliveriesQueryHandler {
	return GetOverdueDeliveriesQueryHandler{db: db}
}

// Handle returns overdue deliveries ordered most overdue first. Terminal
// statuses are excluded; a delivered package can not be late anymore.
func (h GetOverdueDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueDeliveriesQuery,
) ([]OverdueDelivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	overdue := make([]OverdueDelivery, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			customer_name,
			driver_id,
			estimated_delivery_time
		FROM deliveries
		WHERE status NOT IN ('delivered', 'failed', 'cancelled')
		  AND estimated_delivery_time IS NOT NULL
		  AND estimated_delivery_time < ?
		ORDER BY estimated_delivery_time
	`, query.AsOf()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row OverdueDelivery
		var id uuid.UUID
		var driverID *uuid.UUID

		err = rows.Scan(
			&id,
			&row.TrackingCode,
			&row.Status,
			&row.CustomerName,
			&driverID,
			&row.EstimatedDeliveryTime,
		)
		if err != nil {
			return nil, err
		}

		rowID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.ID = rowID

		if driverID != nil {
			converted, idErr := kernel.UUIDFromBytes(driverID[:])
			if idErr != nil {
				return nil, idErr
			}
			row.DriverID = &converted
		}

		overdue = append(overdue, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
