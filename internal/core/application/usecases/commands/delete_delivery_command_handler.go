package commands

import (
	"context"
	"log/slog"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"
)

// DeleteDeliveryCommandHandler removes a delivery record. Removal is only
// legal from pending or cancelled status; a delivery that has entered the
// carrying pipeline is part of the audit trail and stays.
type DeleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
}

// NewDeleteDeliveryCommandHandler creates a handler for delivery removal.
func NewDeleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory, cache ports.TrackingCache, logger *slog.Logger) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

// Handle loads the delivery, checks ownership and deletability, and removes
// the row. Customers may remove only their own deliveries; drivers may not
// remove anything.
func (h *DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.ActorRole() == account.RoleDriver {
		return errs.NewValueIsInvalidError("role")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.DeliveryRepository().GetByID(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if cmd.ActorRole() == account.RoleCustomer && !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
		return errs.NewObjectNotFoundError("delivery", cmd.DeliveryID().String())
	}

	if !aggregate.CanDelete() {
		return errs.NewNotDeletableError(aggregate.Status().String())
	}

	if err := uow.DeliveryRepository().Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if err := h.cache.Invalidate(ctx, aggregate.TrackingCode().String()); err != nil {
		h.logger.Warn("tracking cache invalidation failed",
			"trackingCode", aggregate.TrackingCode().String(), "err", err)
	}

	return nil
}
