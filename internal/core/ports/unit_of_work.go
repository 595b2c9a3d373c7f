package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request or command,
// isolating concurrent operations from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Client code manages the
// lifecycle explicitly: Begin, then Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after
	// Begin; it is a no-op once Commit has succeeded.
	Rollback(ctx context.Context) error

	// DeliveryRepository returns a DeliveryRepository bound to the
	// current transaction.
	DeliveryRepository() DeliveryRepository

	// UserRepository returns a UserRepository bound to the current
	// transaction.
	UserRepository() UserRepository
}
