package queries

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/guard"
)

var ErrGetAccountQueryIsNotConstructed = errors.New(
	"GetAccountQuery must be created via NewGetAccountQuery constructor",
)

// GetAccountQuery fetches the calling user's own account.
type GetAccountQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAccountQuery validates and assembles the query.
func NewGetAccountQuery(userID kernel.UUID) (GetAccountQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetAccountQuery{}, err
	}

	return GetAccountQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountQueryIsNotConstructed)
}

// UserID returns the account to fetch.
func (q GetAccountQuery) UserID() kernel.UUID { return q.userID }
