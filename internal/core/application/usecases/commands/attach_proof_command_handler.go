package commands

import (
	"context"
	"log/slog"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/ports"
)

// AttachProofCommandHandler stores proof of delivery and completes the
// delivered transition, crediting the driver's completion counter in the
// same transaction.
type AttachProofCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	cache      ports.TrackingCache
	recorder   TransitionRecorder
	log        NotificationLog
	logger     *slog.Logger
}

// NewAttachProofCommandHandler creates a handler for proof submission.
func NewAttachProofCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	cache ports.TrackingCache,
	recorder TransitionRecorder,
	log NotificationLog,
	logger *slog.Logger,
) AttachProofCommandHandler {
	return AttachProofCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
		cache:      cache,
		recorder:   recorder,
		log:        log,
		logger:     logger,
	}
}

// Handle attaches the proof and transitions into delivered. Proof can only
// be attached from a status with a legal path to delivered, so a delivery
// that is not out for delivery (or otherwise deliverable) is rejected by the
// aggregate.
func (h *AttachProofCommandHandler) Handle(ctx context.Context, cmd AttachProofCommand) (*delivery.Delivery, error) {
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

	if err := aggregate.AttachProof(cmd.Proof()); err != nil {
		return nil, err
	}

	from := aggregate.Status()
	note := "Delivered to " + cmd.Proof().ReceivedBy()
	if err := aggregate.ChangeStatus(delivery.Delivered, cmd.Proof().Location(), note, cmd.OccurredAt()); err != nil {
		return nil, err
	}

	if err := creditDriverCompletion(ctx, uow, aggregate); err != nil {
		return nil, err
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

func (h *AttachProofCommandHandler) afterCommit(ctx context.Context, aggregate *delivery.Delivery, from delivery.Status) {
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
