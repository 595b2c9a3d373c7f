package commands

import (
	"context"

	"swiftdrop/internal/core/domain/model/account"
)

// ToggleAvailabilityCommandHandler flips a driver's availability. An
// unavailable driver stays logged in but cannot be assigned new deliveries.
type ToggleAvailabilityCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewToggleAvailabilityCommandHandler creates a handler for availability
// toggles.
func NewToggleAvailabilityCommandHandler(uowFactory UserUoWFactory) ToggleAvailabilityCommandHandler {
	return ToggleAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle loads the driver, inverts the availability flag, and persists the
// result. The route guards the role, but the aggregate enforces it again.
func (h *ToggleAvailabilityCommandHandler) Handle(ctx context.Context, cmd ToggleAvailabilityCommand) (*account.User, error) {
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

	user, err := uow.UserRepository().GetByID(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	available := false
	if driver := user.Driver(); driver != nil {
		available = driver.IsAvailable
	}
	if err := user.SetAvailability(!available); err != nil {
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
