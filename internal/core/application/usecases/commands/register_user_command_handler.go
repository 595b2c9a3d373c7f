package commands

import (
	"context"
	"errors"
	"time"

	"swiftdrop/internal/core/domain/model/account"
)

// ErrAccountAlreadyExists is returned when the email or phone is already
// registered. Deliberately vague about which of the two matched so
// registration does not leak account details.
var ErrAccountAlreadyExists = errors.New("email or phone already registered")

// RegisterUserCommandHandler creates an account with a hashed password.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for registration.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory}
}

// Handle registers the user after checking the email and phone are unused.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*account.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := account.NewUser(
		cmd.UserID(),
		cmd.Name(),
		cmd.Email(),
		cmd.Phone(),
		cmd.Password(),
		cmd.Role(),
		cmd.Driver(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taken, err := uow.UserRepository().ExistsByEmailOrPhone(ctx, user.Email(), user.Phone())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAccountAlreadyExists
	}

	if err := uow.UserRepository().Add(ctx, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return user, nil
}
