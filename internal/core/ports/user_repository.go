package ports

import (
	"context"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add persists a new user. A duplicate email surfaces as a
	// DuplicateIdentifierError.
	Add(ctx context.Context, aggregate *account.User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, aggregate *account.User) error

	// GetByID retrieves a user by identifier. Returns
	// ObjectNotFoundError when absent.
	GetByID(ctx context.Context, id kernel.UUID) (*account.User, error)

	// GetByEmail retrieves a user by lowercased email. Returns
	// ObjectNotFoundError when absent.
	GetByEmail(ctx context.Context, email string) (*account.User, error)

	// ExistsByEmailOrPhone reports whether any account already uses the
	// email or the phone number.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
}
