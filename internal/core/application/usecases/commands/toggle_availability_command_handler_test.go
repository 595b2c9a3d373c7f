package commands_test

import (
	"testing"
	"time"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewToggleAvailabilityCommand_RequiresDriverID(t *testing.T) {
	_, err := commands.NewToggleAvailabilityCommand(kernel.UUID{})
	assert.Error(t, err)
}

func TestToggleAvailabilityCommand_NotConstructedViaConstructor(t *testing.T) {
	var cmd commands.ToggleAvailabilityCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrToggleAvailabilityCommandIsNotConstructed)
}

func TestToggleAvailabilityCommandHandler_Handle_FlipsFlag(t *testing.T) {
	ctx := t.Context()
	driver := testDriver(t)
	require.True(t, driver.Driver().IsAvailable)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("GetByID", mock.Anything, driver.ID()).Return(driver, nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Update", mock.Anything, driver).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewToggleAvailabilityCommandHandler(factory)
	cmd, err := commands.NewToggleAvailabilityCommand(driver.ID())
	require.NoError(t, err)

	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, updated.Driver().IsAvailable)
	assert.False(t, updated.IsAssignable())
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestToggleAvailabilityCommandHandler_Handle_ToggleBackRestoresAssignability(t *testing.T) {
	ctx := t.Context()
	driver := testDriver(t)
	require.NoError(t, driver.SetAvailability(false))

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Twice()
	users.On("GetByID", mock.Anything, driver.ID()).Return(driver, nil).Once()
	users.On("Update", mock.Anything, driver).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewToggleAvailabilityCommandHandler(factory)
	cmd, err := commands.NewToggleAvailabilityCommand(driver.ID())
	require.NoError(t, err)

	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, updated.Driver().IsAvailable)
	assert.True(t, updated.IsAssignable())
}

func TestToggleAvailabilityCommandHandler_Handle_RejectsNonDriver(t *testing.T) {
	ctx := t.Context()
	customer, err := account.NewUser(kernel.NewUUID(), "Ada Obi", "ada@example.com",
		"+2348012345678", "s3cret!", account.RoleCustomer, nil, time.Now())
	require.NoError(t, err)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	users.On("GetByID", mock.Anything, customer.ID()).Return(customer, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewToggleAvailabilityCommandHandler(factory)
	cmd, err := commands.NewToggleAvailabilityCommand(customer.ID())
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
