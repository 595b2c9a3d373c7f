package commands_test

import (
	"testing"
	"time"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteDeliveryCommandHandler_Handle_PendingOwnedByCustomer(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	d := testDelivery(t, customerID)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Delete", mock.Anything, d.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	cache := &fakeCache{}
	h := commands.NewDeleteDeliveryCommandHandler(factory, cache, discardLogger())

	cmd, err := commands.NewDeleteDeliveryCommand(d.ID(), customerID, account.RoleCustomer)
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, []string{d.TrackingCode().String()}, cache.invalidated)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteDeliveryCommandHandler_Handle_InTransitIsNotDeletable(t *testing.T) {
	ctx := t.Context()
	d := testDelivery(t, kernel.NewUUID())
	require.NoError(t, d.AssignDriver(kernel.NewUUID(), "Musa Bello", time.Now()))
	require.NoError(t, d.ChangeStatus(delivery.PickedUp, nil, "", time.Now()))
	require.NoError(t, d.ChangeStatus(delivery.InTransit, nil, "", time.Now()))

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory, &fakeCache{}, discardLogger())

	cmd, err := commands.NewDeleteDeliveryCommand(d.ID(), kernel.NewUUID(), account.RoleAdmin)
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotDeletable)
	assert.Contains(t, err.Error(), "in_transit")
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteDeliveryCommandHandler_Handle_ForeignCustomerSeesNotFound(t *testing.T) {
	ctx := t.Context()
	d := testDelivery(t, kernel.NewUUID())

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteDeliveryCommandHandler(factory, &fakeCache{}, discardLogger())

	cmd, err := commands.NewDeleteDeliveryCommand(d.ID(), kernel.NewUUID(), account.RoleCustomer)
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeleteDeliveryCommandHandler_Handle_DriversMayNotDelete(t *testing.T) {
	ctx := t.Context()
	factory := new(MockDeliveryUoWFactory)
	h := commands.NewDeleteDeliveryCommandHandler(factory, &fakeCache{}, discardLogger())

	cmd, err := commands.NewDeleteDeliveryCommand(kernel.NewUUID(), kernel.NewUUID(), account.RoleDriver)
	require.NoError(t, err)

	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
