package commands

import (
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to register a new delivery for
// the authenticated customer. Addresses and package details arrive as
// already-constructed value objects; the handler prices the delivery and
// mints its tracking code.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	customerID    kernel.UUID
	customerName  string
	customerPhone string

	pickupAddress   delivery.Address
	deliveryAddress delivery.Address
	packageDetails  delivery.PackageDetails

	priority              delivery.Priority
	specialInstructions   string
	estimatedDeliveryTime *time.Time

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand validates and assembles the command.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	customerID kernel.UUID,
	customerName string,
	customerPhone string,
	pickupAddress delivery.Address,
	deliveryAddress delivery.Address,
	packageDetails delivery.PackageDetails,
	priority delivery.Priority,
	specialInstructions string,
	estimatedDeliveryTime *time.Time,
) (CreateDeliveryCommand, error) {
	if err := errors.Join(
		deliveryID.Validate(),
		customerID.Validate(),
		pickupAddress.Validate(),
		deliveryAddress.Validate(),
		packageDetails.Validate(),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}
	if customerName == "" {
		return CreateDeliveryCommand{}, errs.NewValueIsRequiredError("customerName")
	}
	if customerPhone == "" {
		return CreateDeliveryCommand{}, errs.NewValueIsRequiredError("customerPhone")
	}

	return CreateDeliveryCommand{
		deliveryID:            deliveryID,
		customerID:            customerID,
		customerName:          customerName,
		customerPhone:         customerPhone,
		pickupAddress:         pickupAddress,
		deliveryAddress:       deliveryAddress,
		packageDetails:        packageDetails,
		priority:              priority,
		specialInstructions:   specialInstructions,
		estimatedDeliveryTime: estimatedDeliveryTime,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier the new delivery will be stored under.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// CustomerID returns the owning customer's identifier.
func (c CreateDeliveryCommand) CustomerID() kernel.UUID { return c.customerID }

// CustomerName returns the customer display name.
func (c CreateDeliveryCommand) CustomerName() string { return c.customerName }

// CustomerPhone returns the customer contact phone.
func (c CreateDeliveryCommand) CustomerPhone() string { return c.customerPhone }

// PickupAddress returns the pickup address.
func (c CreateDeliveryCommand) PickupAddress() delivery.Address { return c.pickupAddress }

// DeliveryAddress returns the drop-off address.
func (c CreateDeliveryCommand) DeliveryAddress() delivery.Address { return c.deliveryAddress }

// PackageDetails returns the package descriptor.
func (c CreateDeliveryCommand) PackageDetails() delivery.PackageDetails { return c.packageDetails }

// Priority returns the requested urgency.
func (c CreateDeliveryCommand) Priority() delivery.Priority { return c.priority }

// SpecialInstructions returns customer handling notes.
func (c CreateDeliveryCommand) SpecialInstructions() string { return c.specialInstructions }

// EstimatedDeliveryTime returns the promised delivery time, or nil.
func (c CreateDeliveryCommand) EstimatedDeliveryTime() *time.Time { return c.estimatedDeliveryTime }
