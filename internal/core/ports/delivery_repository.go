// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work, and outbound collaborators such as the
// notifier, the event publisher, and the tracking cache.
package ports

import (
	"context"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery. A tracking-code collision surfaces as
	// a DuplicateIdentifierError so the caller can regenerate and retry.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery. The write is
	// guarded by the aggregate's persisted status: when another writer
	// has changed the row's status since this aggregate was loaded, the
	// update fails with a ConcurrentModificationError and nothing is
	// written.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// GetByID retrieves a delivery by its internal identifier.
	// Returns ObjectNotFoundError when absent.
	GetByID(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByTrackingCode retrieves a delivery by its public tracking code.
	// Returns ObjectNotFoundError when absent.
	GetByTrackingCode(ctx context.Context, code delivery.TrackingCode) (*delivery.Delivery, error)

	// Delete removes a delivery row. Callers must check CanDelete first;
	// the repository removes whatever id it is given.
	Delete(ctx context.Context, id kernel.UUID) error

	// AppendNotification records an outbound notification on the
	// delivery's log without running the status CAS guard; the log is
	// append-only bookkeeping, not aggregate state.
	AppendNotification(ctx context.Context, id kernel.UUID, record delivery.NotificationRecord) error
}
