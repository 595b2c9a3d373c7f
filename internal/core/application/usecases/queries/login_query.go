package queries

import (
	"errors"
	"strings"

	"swiftdrop/internal/pkg/guard"
)

var (
	ErrLoginQueryIsNotConstructed = errors.New(
		"LoginQuery must be created via NewLoginQuery constructor",
	)

	// ErrInvalidCredentials covers every login failure mode. Callers must
	// not be able to tell an unknown email from a wrong password or a
	// deactivated account.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// LoginQuery authenticates a user by email and password.
type LoginQuery struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewLoginQuery validates and assembles the query. The email is lowercased
// to match how accounts store it.
func NewLoginQuery(email, password string) (LoginQuery, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return LoginQuery{}, ErrInvalidCredentials
	}

	return LoginQuery{
		email:    normalized,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q LoginQuery) Validate() error {
	return q.guard.Validate(ErrLoginQueryIsNotConstructed)
}

// Email returns the normalized login email.
func (q LoginQuery) Email() string { return q.email }

// Password returns the plaintext password to verify.
func (q LoginQuery) Password() string { return q.password }
