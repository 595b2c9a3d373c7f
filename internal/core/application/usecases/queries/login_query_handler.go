package queries

import (
	"context"
	"errors"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/ports"
	"swiftdrop/internal/pkg/errs"
)

// LoginQueryHandler verifies credentials against stored accounts. Every
// failure collapses into ErrInvalidCredentials.
type LoginQueryHandler struct {
	users ports.UserRepository
}

// NewLoginQueryHandler creates a handler for login queries.
func NewLoginQueryHandler(users ports.UserRepository) LoginQueryHandler {
	return LoginQueryHandler{users: users}
}

// Handle authenticates and returns the account on success.
func (h LoginQueryHandler) Handle(ctx context.Context, query LoginQuery) (*account.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	user, err := h.users.GetByEmail(ctx, query.Email())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.ComparePassword(query.Password()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
