package ports

import (
	"context"

	"swiftdrop/internal/core/domain/model/delivery"
)

// Notifier sends human-facing notifications about a delivery. Dispatch is
// best effort: implementations return errors for logging, but callers never
// fail the triggering operation because a notification could not be sent.
type Notifier interface {
	// NotifyCustomer tells the customer about the delivery's current
	// status. Returns the provider message id on success.
	NotifyCustomer(ctx context.Context, aggregate *delivery.Delivery) (string, error)

	// NotifyDriver tells the assigned driver about a new assignment.
	NotifyDriver(ctx context.Context, aggregate *delivery.Delivery, driverPhone string) (string, error)
}
