package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"swiftdrop/internal/core/domain/model/kernel"
)

// GetDeliveryStatsQueryHandler computes the dashboard aggregates with raw
// SQL so counting never loads aggregates into memory.
type GetDeliveryStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStatsQueryHandler creates a handler for the stats query.
func NewGetDeliveryStatsQueryHandler(db *gorm.DB) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{db: db}
}

// Handle executes the aggregation.
func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (GetDeliveryStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	response := GetDeliveryStatsQueryResponse{
		StatusCounts: make(map[string]int64),
		GeneratedAt:  time.Now().UTC(),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM deliveries
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return GetDeliveryStatsQueryResponse{}, err
		}
		response.StatusCounts[status] = count
		response.Total += count
	}
	if err = rows.Err(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	var revenue int64
	err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(price), 0)
		FROM deliveries
		WHERE status = 'delivered'
	`).Scan(&revenue).Error
	if err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}
	response.DeliveredRevenue = kernel.Money(revenue)

	return response, nil
}
