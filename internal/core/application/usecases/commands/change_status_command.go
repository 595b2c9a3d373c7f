package commands

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrChangeStatusCommandIsNotConstructed = errors.New(
	"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
)

// ChangeStatusCommand represents a request to move a delivery to a new
// status. The actor fields carry who is asking, so the handler can scope
// drivers to their own deliveries.
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	target     delivery.Status
	location   *kernel.GeoPoint
	note       string

	actorID   kernel.UUID
	actorRole account.Role

	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewChangeStatusCommand validates and assembles the command. The target
// status only needs to be a member of the status set here; whether the
// transition is legal is decided against the loaded aggregate.
func NewChangeStatusCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	location *kernel.GeoPoint,
	note string,
	actorID kernel.UUID,
	actorRole account.Role,
	occurredAt time.Time,
) (ChangeStatusCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		target.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return ChangeStatusCommand{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return ChangeStatusCommand{}, err
		}
	}

	return ChangeStatusCommand{
		deliveryID: deliveryID,
		target:     target,
		location:   location,
		note:       note,
		actorID:    actorID,
		actorRole:  actorRole,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

// DeliveryID returns the delivery to change.
func (c ChangeStatusCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// Target returns the requested status.
func (c ChangeStatusCommand) Target() delivery.Status { return c.target }

// Location returns where the change happened, or nil.
func (c ChangeStatusCommand) Location() *kernel.GeoPoint { return c.location }

// Note returns the free-text note for the timeline entry.
func (c ChangeStatusCommand) Note() string { return c.note }

// ActorID returns who is requesting the change.
func (c ChangeStatusCommand) ActorID() kernel.UUID { return c.actorID }

// ActorRole returns the requester's role.
func (c ChangeStatusCommand) ActorRole() account.Role { return c.actorRole }

// OccurredAt returns the transition timestamp.
func (c ChangeStatusCommand) OccurredAt() time.Time { return c.occurredAt }
