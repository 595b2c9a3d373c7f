package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrToggleAvailabilityCommandIsNotConstructed = errors.New(
	"ToggleAvailabilityCommand must be created via NewToggleAvailabilityCommand constructor",
)

// ToggleAvailabilityCommand flips the calling driver's availability flag.
type ToggleAvailabilityCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewToggleAvailabilityCommand validates and assembles the command.
func NewToggleAvailabilityCommand(driverID kernel.UUID) (ToggleAvailabilityCommand, error) {
	if err := driverID.Validate(); err != nil {
		return ToggleAvailabilityCommand{}, err
	}

	return ToggleAvailabilityCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ToggleAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrToggleAvailabilityCommandIsNotConstructed)
}

// DriverID returns the driver whose availability is toggled.
func (c ToggleAvailabilityCommand) DriverID() kernel.UUID { return c.driverID }
