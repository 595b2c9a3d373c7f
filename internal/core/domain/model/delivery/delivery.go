package delivery

import (
	"fmt"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery must be created via NewDelivery or RestoreDelivery")

// creationNote is the note on the first timeline entry of every delivery.
const creationNote = "Delivery created"

// NotificationRecord logs one outbound customer notification: the status it
// announced, when it was sent, and the provider message id.
type NotificationRecord struct {
	Status     Status
	Timestamp  time.Time
	MessageSID string
}

// Delivery is the aggregate root for a single shipment. It owns the status
// state machine, the append-only timeline ledger, and the derived
// timestamps; nothing else mutates them.
//
// Concurrent writers racing on the same record are serialized by the
// persistence layer: the repository compares against PersistedStatus() when
// updating, and a losing writer gets a ConcurrentModificationError instead
// of silently clobbering the ledger.
type Delivery struct {
	id           kernel.UUID
	trackingCode TrackingCode

	customerID    kernel.UUID
	customerName  string
	customerPhone string
	driverID      *kernel.UUID

	pickupAddress   Address
	deliveryAddress Address
	packageDetails  PackageDetails

	priority            Priority
	specialInstructions string
	internalNotes       string

	status   Status
	timeline Timeline

	assignedAt            *time.Time
	actualPickupTime      *time.Time
	actualDeliveryTime    *time.Time
	estimatedPickupTime   *time.Time
	estimatedDeliveryTime *time.Time

	price         kernel.Money
	paymentStatus PaymentStatus
	proof         *ProofOfDelivery
	notifications []NotificationRecord
	createdAt     time.Time

	// persistedStatus is the status the aggregate was loaded with; the
	// repository uses it as the compare-and-set guard. Unknown for
	// newly created aggregates.
	persistedStatus Status

	isConstructed bool
}

// NewDelivery creates a delivery in pending status with a single timeline
// entry carrying the creation note. The price and tracking code are fixed
// here and never change afterwards.
func NewDelivery(
	id kernel.UUID,
	trackingCode TrackingCode,
	customerID kernel.UUID,
	customerName string,
	customerPhone string,
	pickupAddress Address,
	deliveryAddress Address,
	packageDetails PackageDetails,
	priority Priority,
	specialInstructions string,
	estimatedDeliveryTime *time.Time,
	price kernel.Money,
	now time.Time,
) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := trackingCode.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if customerName == "" {
		return nil, errs.NewValueIsRequiredError("customerName")
	}
	if customerPhone == "" {
		return nil, errs.NewValueIsRequiredError("customerPhone")
	}
	if err := pickupAddress.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("pickupAddress", err)
	}
	if err := deliveryAddress.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("deliveryAddress", err)
	}
	if err := packageDetails.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("packageDetails", err)
	}
	if err := price.Validate(); err != nil {
		return nil, err
	}

	d := &Delivery{
		id:                    id,
		trackingCode:          trackingCode,
		customerID:            customerID,
		customerName:          customerName,
		customerPhone:         customerPhone,
		pickupAddress:         pickupAddress,
		deliveryAddress:       deliveryAddress,
		packageDetails:        packageDetails,
		priority:              priority,
		specialInstructions:   specialInstructions,
		estimatedDeliveryTime: estimatedDeliveryTime,
		status:                Pending,
		price:                 price,
		paymentStatus:         PaymentPending,
		createdAt:             now,
		isConstructed:         true,
	}
	d.timeline.Append(NewTimelineEntry(Pending, now, nil, creationNote))

	return d, nil
}

// RestoreDeliveryParams carries a persisted delivery state back into the
// domain. All fields mirror the aggregate.
type RestoreDeliveryParams struct {
	ID                    kernel.UUID
	TrackingCode          TrackingCode
	CustomerID            kernel.UUID
	CustomerName          string
	CustomerPhone         string
	DriverID              *kernel.UUID
	PickupAddress         Address
	DeliveryAddress       Address
	PackageDetails        PackageDetails
	Priority              Priority
	SpecialInstructions   string
	InternalNotes         string
	Status                Status
	Timeline              []TimelineEntry
	AssignedAt            *time.Time
	ActualPickupTime      *time.Time
	ActualDeliveryTime    *time.Time
	EstimatedPickupTime   *time.Time
	EstimatedDeliveryTime *time.Time
	Price                 kernel.Money
	PaymentStatus         PaymentStatus
	Proof                 *ProofOfDelivery
	Notifications         []NotificationRecord
	CreatedAt             time.Time
}

// RestoreDelivery reconstructs an aggregate from persistence. The restored
// status becomes the compare-and-set baseline for the next update.
func RestoreDelivery(params RestoreDeliveryParams) (*Delivery, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, err
	}
	if err := params.TrackingCode.Validate(); err != nil {
		return nil, err
	}
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}
	if len(params.Timeline) == 0 {
		return nil, errs.NewValueIsRequiredError("timeline")
	}

	return &Delivery{
		id:                    params.ID,
		trackingCode:          params.TrackingCode,
		customerID:            params.CustomerID,
		customerName:          params.CustomerName,
		customerPhone:         params.CustomerPhone,
		driverID:              params.DriverID,
		pickupAddress:         params.PickupAddress,
		deliveryAddress:       params.DeliveryAddress,
		packageDetails:        params.PackageDetails,
		priority:              params.Priority,
		specialInstructions:   params.SpecialInstructions,
		internalNotes:         params.InternalNotes,
		status:                params.Status,
		timeline:              RestoreTimeline(params.Timeline),
		assignedAt:            params.AssignedAt,
		actualPickupTime:      params.ActualPickupTime,
		actualDeliveryTime:    params.ActualDeliveryTime,
		estimatedPickupTime:   params.EstimatedPickupTime,
		estimatedDeliveryTime: params.EstimatedDeliveryTime,
		price:                 params.Price,
		paymentStatus:         params.PaymentStatus,
		proof:                 params.Proof,
		notifications:         params.Notifications,
		createdAt:             params.CreatedAt,
		persistedStatus:       params.Status,
		isConstructed:         true,
	}, nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ChangeStatus applies a validated status transition: the target must appear
// in the current status's row of the transition table. On success the status
// changes, a timeline entry is appended, and the actual pickup/delivery
// timestamps are derived the first time their status is reached.
func (d *Delivery) ChangeStatus(target Status, location *kernel.GeoPoint, note string, now time.Time) error {
	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}

	d.status = newStatus
	d.timeline.Append(NewTimelineEntry(newStatus, now, location, note))

	if newStatus == PickedUp && d.actualPickupTime == nil {
		t := now
		d.actualPickupTime = &t
	}
	if newStatus == Delivered && d.actualDeliveryTime == nil {
		t := now
		d.actualDeliveryTime = &t
	}

	return nil
}

// AssignDriver sets the driver reference and assignedAt, then performs the
// pending to assigned transition. Assignment is a distinct operation: it is
// permitted only while the delivery is pending, and any other status yields
// a NotAssignableError.
func (d *Delivery) AssignDriver(driverID kernel.UUID, driverName string, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if d.status != Pending {
		return errs.NewNotAssignableError(d.status.String())
	}

	d.driverID = &driverID
	t := now
	d.assignedAt = &t

	return d.ChangeStatus(Assigned, nil, fmt.Sprintf("Assigned to %s", driverName), now)
}

// AttachProof stores the proof of delivery. Proof may only be attached while
// the delivery can still transition into delivered; the caller is expected
// to follow with ChangeStatus(Delivered, ...).
func (d *Delivery) AttachProof(proof ProofOfDelivery) error {
	if err := proof.Validate(); err != nil {
		return err
	}
	if !d.status.CanTransitionTo(Delivered) {
		return errs.NewInvalidTransitionError(d.status.String(), Delivered.String())
	}

	d.proof = &proof
	return nil
}

// CanDelete reports whether the delivery may be removed. Only pending and
// cancelled deliveries are deletable; no other state may be removed.
func (d *Delivery) CanDelete() bool {
	return d.status == Pending || d.status == Cancelled
}

// RecordNotification appends an outbound notification to the log.
func (d *Delivery) RecordNotification(status Status, messageSID string, now time.Time) {
	d.notifications = append(d.notifications, NotificationRecord{
		Status:     status,
		Timestamp:  now,
		MessageSID: messageSID,
	})
}

// ID returns the internal identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// TrackingCode returns the public tracking code.
func (d *Delivery) TrackingCode() TrackingCode { return d.trackingCode }

// CustomerID returns the owning customer's identifier.
func (d *Delivery) CustomerID() kernel.UUID { return d.customerID }

// CustomerName returns the customer display name captured at creation.
func (d *Delivery) CustomerName() string { return d.customerName }

// CustomerPhone returns the customer phone captured at creation.
func (d *Delivery) CustomerPhone() string { return d.customerPhone }

// DriverID returns the assigned driver's identifier, or nil before
// assignment.
func (d *Delivery) DriverID() *kernel.UUID { return d.driverID }

// PickupAddress returns the pickup address.
func (d *Delivery) PickupAddress() Address { return d.pickupAddress }

// DeliveryAddress returns the drop-off address.
func (d *Delivery) DeliveryAddress() Address { return d.deliveryAddress }

// PackageDetails returns the package descriptor.
func (d *Delivery) PackageDetails() PackageDetails { return d.packageDetails }

// Priority returns the requested urgency.
func (d *Delivery) Priority() Priority { return d.priority }

// SpecialInstructions returns customer-provided handling notes.
func (d *Delivery) SpecialInstructions() string { return d.specialInstructions }

// InternalNotes returns staff-only notes, stripped from public tracking.
func (d *Delivery) InternalNotes() string { return d.internalNotes }

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status { return d.status }

// Timeline returns the append-only status ledger.
func (d *Delivery) Timeline() Timeline { return d.timeline }

// AssignedAt returns when a driver was first assigned, or nil.
func (d *Delivery) AssignedAt() *time.Time { return d.assignedAt }

// ActualPickupTime returns when the package was first picked up, or nil.
func (d *Delivery) ActualPickupTime() *time.Time { return d.actualPickupTime }

// ActualDeliveryTime returns when the package was delivered, or nil.
func (d *Delivery) ActualDeliveryTime() *time.Time { return d.actualDeliveryTime }

// EstimatedPickupTime returns the promised pickup time, or nil.
func (d *Delivery) EstimatedPickupTime() *time.Time { return d.estimatedPickupTime }

// EstimatedDeliveryTime returns the promised delivery time, or nil.
func (d *Delivery) EstimatedDeliveryTime() *time.Time { return d.estimatedDeliveryTime }

// Price returns the quote computed at creation. Immutable; edits never
// re-price a delivery.
func (d *Delivery) Price() kernel.Money { return d.price }

// PaymentStatus returns the payment settlement state.
func (d *Delivery) PaymentStatus() PaymentStatus { return d.paymentStatus }

// Proof returns the proof of delivery, or nil before handover.
func (d *Delivery) Proof() *ProofOfDelivery { return d.proof }

// Notifications returns the outbound notification log.
func (d *Delivery) Notifications() []NotificationRecord { return d.notifications }

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// PersistedStatus returns the status this aggregate was loaded with, used by
// the repository as the optimistic-concurrency guard. Unknown for aggregates
// that have never been persisted.
func (d *Delivery) PersistedStatus() Status { return d.persistedStatus }
