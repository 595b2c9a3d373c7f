package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
	"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
)

// DeleteDeliveryCommand represents a request to remove a delivery record.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	actorRole  account.Role

	guard guard.ConstructorGuard
}

// NewDeleteDeliveryCommand validates and assembles the command.
func NewDeleteDeliveryCommand(deliveryID, actorID kernel.UUID, actorRole account.Role) (DeleteDeliveryCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return DeleteDeliveryCommand{}, err
	}

	return DeleteDeliveryCommand{
		deliveryID: deliveryID,
		actorID:    actorID,
		actorRole:  actorRole,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to remove.
func (c DeleteDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// ActorID returns who is requesting removal.
func (c DeleteDeliveryCommand) ActorID() kernel.UUID { return c.actorID }

// ActorRole returns the requester's role.
func (c DeleteDeliveryCommand) ActorRole() account.Role { return c.actorRole }
