package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"swiftdrop/internal/core/application/usecases/queries"
)

// overdueSchedule runs the sweep once a minute. Estimates are coarse, so a
// tighter cadence would only repeat the same findings.
const overdueSchedule = "* * * * *"

// OverdueDeliveryJob periodically reports deliveries that blew past their
// estimated delivery time without reaching a terminal status.
type OverdueDeliveryJob struct {
	handler queries.GetOverdueDeliveriesQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueDeliveryJob creates the overdue sweep job.
func NewOverdueDeliveryJob(handler queries.GetOverdueDeliveriesQueryHandler, logger *slog.Logger) *OverdueDeliveryJob {
	return &OverdueDeliveryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "overdue_delivery_job"),
	}
}

// Start schedules the sweep.
func (j *OverdueDeliveryJob) Start() error {
	_, err := j.cron.AddFunc(overdueSchedule, j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue delivery job started (running every minute)")
	return nil
}

// Stop stops the sweep.
func (j *OverdueDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue delivery job stopped")
}

func (j *OverdueDeliveryJob) sweep() {
	ctx := context.Background()

	query, err := queries.NewGetOverdueDeliveriesQuery(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue delivery job failed to build query", "error", err)
		return
	}

	overdueDeliveries, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue delivery job failed", "error", err)
		return
	}

	for _, overdue := range overdueDeliveries {
		j.logger.WarnContext(ctx, "Delivery is overdue",
			"delivery_id", overdue.ID.String(),
			"tracking_code", overdue.TrackingCode,
			"status", overdue.Status,
			"estimated_delivery_time", overdue.EstimatedDeliveryTime,
		)
	}
}
