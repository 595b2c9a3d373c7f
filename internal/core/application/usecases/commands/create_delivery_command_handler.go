package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/observability"
)

// trackingCodeRetries bounds regeneration attempts after a tracking-code
// collision. The persistence unique constraint is the authority; generation
// is only best-effort unique.
const trackingCodeRetries = 2

// CreateDeliveryCommandHandler prices a new delivery, mints its tracking
// code, and persists it in pending status. After commit the customer is
// notified best-effort.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	pricer     *services.Pricer
	notifier   ports.Notifier
	log        NotificationLog
	logger     *slog.Logger
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	pricer *services.Pricer,
	notifier ports.Notifier,
	log NotificationLog,
	logger *slog.Logger,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		notifier:   notifier,
		log:        log,
		logger:     logger,
	}
}

// Handle processes the creation command. The price is computed exactly once
// here; subsequent edits never re-price the delivery. On a tracking-code
// collision the code is regenerated and the insert retried.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	price := h.pricer.Quote(cmd.PackageDetails(), cmd.PickupAddress(), cmd.DeliveryAddress())

	var aggregate *delivery.Delivery
	for attempt := 0; ; attempt++ {
		now := time.Now().UTC()
		code := delivery.GenerateTrackingCode(now)

		var err error
		aggregate, err = delivery.NewDelivery(
			cmd.DeliveryID(),
			code,
			cmd.CustomerID(),
			cmd.CustomerName(),
			cmd.CustomerPhone(),
			cmd.PickupAddress(),
			cmd.DeliveryAddress(),
			cmd.PackageDetails(),
			cmd.Priority(),
			cmd.SpecialInstructions(),
			cmd.EstimatedDeliveryTime(),
			price,
			now,
		)
		if err != nil {
			return nil, err
		}

		err = h.persist(ctx, aggregate)
		if err == nil {
			break
		}
		var duplicate *errs.DuplicateIdentifierError
		if errors.As(err, &duplicate) && attempt < trackingCodeRetries {
			h.logger.Warn("tracking code collision, regenerating",
				"trackingCode", code.String(), "attempt", attempt+1)
			continue
		}
		return nil, err
	}

	observability.DeliveriesCreatedTotal.Inc()
	h.notifyCustomer(ctx, aggregate)

	return aggregate, nil
}

func (h *CreateDeliveryCommandHandler) persist(ctx context.Context, aggregate *delivery.Delivery) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateDeliveryCommandHandler) notifyCustomer(ctx context.Context, aggregate *delivery.Delivery) {
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
