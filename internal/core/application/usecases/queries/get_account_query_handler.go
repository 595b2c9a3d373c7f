package queries

import (
	"context"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/ports"
)

// GetAccountQueryHandler returns the authenticated user's own account. The
// identity comes from the verified token, so no further scoping applies.
type GetAccountQueryHandler struct {
	users ports.UserRepository
}

// NewGetAccountQueryHandler creates the handler.
func NewGetAccountQueryHandler(users ports.UserRepository) GetAccountQueryHandler {
	return GetAccountQueryHandler{users: users}
}

// Handle fetches the account.
func (h GetAccountQueryHandler) Handle(ctx context.Context, query GetAccountQuery) (*account.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.users.GetByID(ctx, query.UserID())
}
