package queries

import (
	"errors"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves the full state of one delivery, including its
// timeline and proof. Visibility follows the same scoping as mutations:
// customers and drivers only see deliveries that belong to them.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	actorRole  account.Role

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery validates and assembles the query.
func NewGetDeliveryQuery(deliveryID, actorID kernel.UUID, actorRole account.Role) (GetDeliveryQuery, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		actorID:    actorID,
		actorRole:  actorRole,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the delivery to fetch.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// ActorID returns who is asking.
func (q GetDeliveryQuery) ActorID() kernel.UUID { return q.actorID }

// ActorRole returns the requester's role.
func (q GetDeliveryQuery) ActorRole() account.Role { return q.actorRole }
