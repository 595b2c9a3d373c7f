package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand represents an open registration request.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	name     string
	email    string
	phone    string
	password string
	role     account.Role
	driver   *account.DriverProfile

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand validates and assembles the command. Password
// strength and email shape are enforced by the aggregate constructor; the
// command only requires presence.
func NewRegisterUserCommand(
	userID kernel.UUID,
	name string,
	email string,
	phone string,
	password string,
	role account.Role,
	driver *account.DriverProfile,
) (RegisterUserCommand, error) {
	if err := errors.Join(
		userID.Validate(),
		role.Validate(),
	); err != nil {
		return RegisterUserCommand{}, err
	}
	if password == "" {
		return RegisterUserCommand{}, errs.NewValueIsRequiredError("password")
	}

	return RegisterUserCommand{
		userID:   userID,
		name:     name,
		email:    email,
		phone:    phone,
		password: password,
		role:     role,
		driver:   driver,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// UserID returns the identifier the account will be stored under.
func (c RegisterUserCommand) UserID() kernel.UUID { return c.userID }

// Name returns the display name.
func (c RegisterUserCommand) Name() string { return c.name }

// Email returns the login email.
func (c RegisterUserCommand) Email() string { return c.email }

// Phone returns the contact phone.
func (c RegisterUserCommand) Phone() string { return c.phone }

// Password returns the plaintext password; it never leaves this layer.
func (c RegisterUserCommand) Password() string { return c.password }

// Role returns the requested role.
func (c RegisterUserCommand) Role() account.Role { return c.role }

// Driver returns the driver profile for driver registrations, or nil.
func (c RegisterUserCommand) Driver() *account.DriverProfile { return c.driver }
