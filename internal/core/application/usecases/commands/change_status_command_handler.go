package commands

import (
	"context"
	"log/slog"
	"time"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"
)

// TransitionRecorder observes applied status transitions for metrics.
type TransitionRecorder interface {
	ObserveTransition(from, to string)
}

// ChangeStatusCommandHandler applies a validated status transition inside a
// transaction. When a delivery reaches delivered status the assigned
// driver's completion counter is bumped in the same transaction.
//
// After commit the handler fires best-effort side effects: a customer
// notification, a broker event, a tracking-cache invalidation, and a metrics
// observation. None of them can fail the transition.
type ChangeStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	cache      ports.TrackingCache
	recorder   TransitionRecorder
	log        NotificationLog
	logger     *slog.Logger
}

// NewChangeStatusCommandHandler creates a handler for status transitions.
func NewChangeStatusCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	cache ports.TrackingCache,
	recorder TransitionRecorder,
	log NotificationLog,
	logger *slog.Logger,
) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
		cache:      cache,
		recorder:   recorder,
		log:        log,
		logger:     logger,
	}
}

// Handle loads the delivery, authorizes the actor, applies the transition,
// and persists under the optimistic-concurrency guard: if another writer
// changed the status since this load, Update fails with a
// ConcurrentModificationError and the client retries against fresh state.
func (h *ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) (*delivery.Delivery, error) {
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

	aggregate, err := uow.DeliveryRepository().GetByID(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err := authorizeMutation(aggregate, cmd.ActorID(), cmd.ActorRole()); err != nil {
		return nil, err
	}

	from := aggregate.Status()
	if err := aggregate.ChangeStatus(cmd.Target(), cmd.Location(), cmd.Note(), cmd.OccurredAt()); err != nil {
		return nil, err
	}

	if aggregate.Status() == delivery.Delivered {
		if err := creditDriverCompletion(ctx, uow, aggregate); err != nil {
			return nil, err
		}
	}

	if err := uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.afterCommit(ctx, aggregate, from)

	return aggregate, nil
}

func (h *ChangeStatusCommandHandler) afterCommit(ctx context.Context, aggregate *delivery.Delivery, from delivery.Status) {
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

// authorizeMutation scopes who may mutate a delivery: admins always,
// drivers only when assigned to it, customers never through the status
// endpoints (cancellation flows through the same command with an admin or
// owner check done by the caller).
func authorizeMutation(aggregate *delivery.Delivery, actorID kernel.UUID, role account.Role) error {
	switch role {
	case account.RoleAdmin:
		return nil
	case account.RoleDriver:
		if aggregate.DriverID() != nil && aggregate.DriverID().IsEqual(actorID) {
			return nil
		}
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	case account.RoleCustomer:
		if aggregate.CustomerID().IsEqual(actorID) {
			return nil
		}
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// creditDriverCompletion bumps the assigned driver's completed-delivery
// counter in the same transaction as the status change, so the counter can
// never double-count a delivery.
func creditDriverCompletion(ctx context.Context, uow UoW, aggregate *delivery.Delivery) error {
	if aggregate.DriverID() == nil {
		return nil
	}

	driver, err := uow.UserRepository().GetByID(ctx, *aggregate.DriverID())
	if err != nil {
		return err
	}
	if err := driver.RecordCompletedDelivery(); err != nil {
		return err
	}

	return uow.UserRepository().Update(ctx, driver)
}
