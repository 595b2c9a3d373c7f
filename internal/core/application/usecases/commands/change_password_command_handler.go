package commands

import (
	"context"
	"errors"

	"swiftdrop/internal/core/domain/model/account"
)

// ErrCurrentPasswordMismatch is returned when the supplied current password
// does not match the stored hash.
var ErrCurrentPasswordMismatch = errors.New("current password is incorrect")

// ChangePasswordCommandHandler verifies the current password and stores a
// hash of the new one.
type ChangePasswordCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewChangePasswordCommandHandler creates a handler for password changes.
func NewChangePasswordCommandHandler(uowFactory UserUoWFactory) ChangePasswordCommandHandler {
	return ChangePasswordCommandHandler{uowFactory: uowFactory}
}

// Handle rotates the password. A wrong current password surfaces as
// ErrCurrentPasswordMismatch without revealing anything else.
func (h *ChangePasswordCommandHandler) Handle(ctx context.Context, cmd ChangePasswordCommand) (*account.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	user, err := uow.UserRepository().GetByID(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err := user.ComparePassword(cmd.CurrentPassword()); err != nil {
		return nil, ErrCurrentPasswordMismatch
	}

	if err := user.ChangePassword(cmd.NewPassword()); err != nil {
		return nil, err
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return user, nil
}
