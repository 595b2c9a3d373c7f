package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"
)

// AssignDriverCommandHandler assigns an active, available driver to a
// pending delivery. Both aggregates are loaded and written in a single
// transaction. After commit the driver and the customer are notified best
// effort and the tracking cache entry is dropped.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	cache      ports.TrackingCache
	recorder   TransitionRecorder
	log        NotificationLog
	logger     *slog.Logger
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	cache ports.TrackingCache,
	recorder TransitionRecorder,
	log NotificationLog,
	logger *slog.Logger,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
		cache:      cache,
		recorder:   recorder,
		log:        log,
		logger:     logger,
	}
}

// Handle assigns the driver. A non-pending delivery yields a
// NotAssignableError from the aggregate; an unsuitable driver (wrong role,
// deactivated, or marked unavailable) is rejected here before the aggregate
// is touched.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driver, err := uow.UserRepository().GetByID(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if !driver.IsAssignable() {
		return nil, errs.NewValueIsInvalidErrorWithCause("driverId",
			fmt.Errorf("user %s is not an available driver", driver.ID().String()))
	}

	aggregate, err := uow.DeliveryRepository().GetByID(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	from := aggregate.Status()
	if err := aggregate.AssignDriver(driver.ID(), driver.Name(), cmd.OccurredAt()); err != nil {
		return nil, err
	}

	if err := uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.afterCommit(ctx, aggregate, from, driver.Phone())

	return aggregate, nil
}

func (h *AssignDriverCommandHandler) afterCommit(ctx context.Context, aggregate *delivery.Delivery, from delivery.Status, driverPhone string) {
	h.recorder.ObserveTransition(from.String(), aggregate.Status().String())

	if err := h.cache.Invalidate(ctx, aggregate.TrackingCode().String()); err != nil {
		h.logger.Warn("tracking cache invalidation failed",
			"trackingCode", aggregate.TrackingCode().String(), "err", err)
	}

	event := ports.NewDeliveryStatusChangedEvent(aggregate, from, time.Now().UTC())
	if err := h.publisher.PublishDeliveryStatusChanged(ctx, event); err != nil {
		h.logger.Warn("status event publish failed",
			"deliveryId", aggregate.ID().String(), "err", err)
	}

	if _, err := h.notifier.NotifyDriver(ctx, aggregate, driverPhone); err != nil {
		h.logger.Warn("driver notification failed",
			"deliveryId", aggregate.ID().String(), "err", err)
	}

	sid, err := h.notifier.NotifyCustomer(ctx, aggregate)
	if err != nil {
		h.logger.Warn("customer notification failed",
			"deliveryId", aggregate.ID().String(), "err", err)
		return
	}
	record := delivery.NotificationRecord{
		Status:     aggregate.Status(),
		Timestamp:  time.Now().UTC(),
		MessageSID: sid,
	}
	if err := h.log.AppendNotification(ctx, aggregate.ID(), record); err != nil {
		h.logger.Warn("notification log append failed",
			"deliveryId", aggregate.ID().String(), "err", err)
	}
}
