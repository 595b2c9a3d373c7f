package commands

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents an admin request to assign a driver to a
// pending delivery.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand validates and assembles the command.
func NewAssignDriverCommand(deliveryID, driverID kernel.UUID, occurredAt time.Time) (AssignDriverCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		driverID.Validate(),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// DeliveryID returns the delivery to assign.
func (c AssignDriverCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// DriverID returns the driver to assign.
func (c AssignDriverCommand) DriverID() kernel.UUID { return c.driverID }

// OccurredAt returns the assignment timestamp.
func (c AssignDriverCommand) OccurredAt() time.Time { return c.occurredAt }
