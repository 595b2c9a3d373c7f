// Package commands contains business operations that modify system state.
// Implements the command side of the CQRS split: every handler validates its
// command, runs a transaction, and fires best-effort side effects only after
// the commit has succeeded.
package commands

import (
	"context"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers, sliced so each handler depends only on the repositories it
// touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides a delivery repository bound to the
	// current transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// UserRepoFactory provides a user repository bound to the current
	// transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UserUoW manages transactions for user-only operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	// UserUoWFactory creates user unit of work instances.
	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW manages transactions spanning delivery and user aggregates,
	// for commands such as a status change that also bumps the driver's
	// completion counter.
	UoW interface {
		TxManager
		DeliveryRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// NotificationLog records outbound notifications outside the transactional
// write path; appends happen after commit and never fail the operation.
type NotificationLog interface {
	AppendNotification(ctx context.Context, id kernel.UUID, record delivery.NotificationRecord) error
}
