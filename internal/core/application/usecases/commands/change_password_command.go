package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var ErrChangePasswordCommandIsNotConstructed = errors.New(
	"ChangePasswordCommand must be created via NewChangePasswordCommand constructor",
)

// ChangePasswordCommand rotates the calling account's password.
type ChangePasswordCommand struct { //nolint:recvcheck //using for validation
	userID          kernel.UUID
	currentPassword string
	newPassword     string

	guard guard.ConstructorGuard
}

// NewChangePasswordCommand validates and assembles the command. New-password
// strength is enforced by the aggregate; the command only requires presence.
func NewChangePasswordCommand(userID kernel.UUID, currentPassword, newPassword string) (ChangePasswordCommand, error) {
	if err := userID.Validate(); err != nil {
		return ChangePasswordCommand{}, err
	}
	if currentPassword == "" {
		return ChangePasswordCommand{}, errs.NewValueIsRequiredError("currentPassword")
	}
	if newPassword == "" {
		return ChangePasswordCommand{}, errs.NewValueIsRequiredError("newPassword")
	}

	return ChangePasswordCommand{
		userID:          userID,
		currentPassword: currentPassword,
		newPassword:     newPassword,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangePasswordCommand) Validate() error {
	return c.guard.Validate(ErrChangePasswordCommandIsNotConstructed)
}

// UserID returns the account being updated.
func (c ChangePasswordCommand) UserID() kernel.UUID { return c.userID }

// CurrentPassword returns the password to verify before the change.
func (c ChangePasswordCommand) CurrentPassword() string { return c.currentPassword }

// NewPassword returns the replacement password.
func (c ChangePasswordCommand) NewPassword() string { return c.newPassword }
