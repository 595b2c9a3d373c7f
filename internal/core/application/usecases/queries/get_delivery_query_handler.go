package queries

import (
	"context"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"
)

// GetDeliveryQueryHandler loads one delivery aggregate for the detail view.
// It goes through the repository rather than raw SQL because the view needs
// the full timeline, proof, and notification history.
type GetDeliveryQueryHandler struct {
	deliveries ports.DeliveryRepository
}

// NewGetDeliveryQueryHandler creates a handler for delivery detail queries.
func NewGetDeliveryQueryHandler(deliveries ports.DeliveryRepository) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{deliveries: deliveries}
}

// Handle fetches the delivery and enforces visibility. A delivery the actor
// may not see is reported as not found, not as forbidden.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (*delivery.Delivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.deliveries.GetByID(ctx, query.DeliveryID())
	if err != nil {
		return nil, err
	}

	switch query.ActorRole() {
	case account.RoleAdmin:
	case account.RoleDriver:
		if aggregate.DriverID() == nil || !aggregate.DriverID().IsEqual(query.ActorID()) {
			return nil, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
		}
	default:
		if !aggregate.CustomerID().IsEqual(query.ActorID()) {
			return nil, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
		}
	}

	return aggregate, nil
}
