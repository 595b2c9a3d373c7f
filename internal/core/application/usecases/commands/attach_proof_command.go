package commands

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrAttachProofCommandIsNotConstructed = errors.New(
	"AttachProofCommand must be created via NewAttachProofCommand constructor",
)

// AttachProofCommand represents the handover step: the driver submits proof
// of delivery, and the delivery transitions into delivered in the same
// transaction.
type AttachProofCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	proof      delivery.ProofOfDelivery

	actorID   kernel.UUID
	actorRole account.Role

	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewAttachProofCommand validates and assembles the command.
func NewAttachProofCommand(
	deliveryID kernel.UUID,
	proof delivery.ProofOfDelivery,
	actorID kernel.UUID,
	actorRole account.Role,
	occurredAt time.Time,
) (AttachProofCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		proof.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return AttachProofCommand{}, err
	}

	return AttachProofCommand{
		deliveryID: deliveryID,
		proof:      proof,
		actorID:    actorID,
		actorRole:  actorRole,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachProofCommand) Validate() error {
	return c.guard.Validate(ErrAttachProofCommandIsNotConstructed)
}

// DeliveryID returns the delivery being handed over.
func (c AttachProofCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// Proof returns the proof of delivery.
func (c AttachProofCommand) Proof() delivery.ProofOfDelivery { return c.proof }

// ActorID returns who is submitting the proof.
func (c AttachProofCommand) ActorID() kernel.UUID { return c.actorID }

// ActorRole returns the submitter's role.
func (c AttachProofCommand) ActorRole() account.Role { return c.actorRole }

// OccurredAt returns the handover timestamp.
func (c AttachProofCommand) OccurredAt() time.Time { return c.occurredAt }
