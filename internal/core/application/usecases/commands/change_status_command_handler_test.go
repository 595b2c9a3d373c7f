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

type changeStatusEnv struct {
	repo      *MockDeliveryRepository
	users     *MockUserRepository
	uow       *MockUoW
	factory   *MockUoWFactory
	notifier  *fakeNotifier
	publisher *fakePublisher
	cache     *fakeCache
	recorder  *fakeRecorder
	log       *fakeNotificationLog
	handler   commands.ChangeStatusCommandHandler
}

func newChangeStatusEnv() *changeStatusEnv {
	env := &changeStatusEnv{
		repo:      new(MockDeliveryRepository),
		users:     new(MockUserRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
		cache:     &fakeCache{},
		recorder:  &fakeRecorder{},
		log:       &fakeNotificationLog{},
	}
	env.handler = commands.NewChangeStatusCommandHandler(
		env.factory, env.notifier, env.publisher, env.cache, env.recorder, env.log, discardLogger())
	return env
}

func changeCmd(t *testing.T, d *delivery.Delivery, target delivery.Status, actorID kernel.UUID, role account.Role) commands.ChangeStatusCommand {
	t.Helper()
	cmd, err := commands.NewChangeStatusCommand(d.ID(), target, nil, "", actorID, role, time.Now())
	require.NoError(t, err)
	return cmd
}

func TestChangeStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	env := newChangeStatusEnv()
	admin := kernel.NewUUID()
	d := testDelivery(t, kernel.NewUUID())

	mock.InOrder(
		env.uow.On("Begin", ctx).Return(nil).Once(),
		env.uow.On("DeliveryRepository").Return(env.repo).Once(),
		env.repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once(),
		env.uow.On("DeliveryRepository").Return(env.repo).Once(),
		env.repo.On("Update", mock.Anything, d).Return(nil).Once(),
		env.uow.On("Commit", ctx).Return(nil).Once(),
		env.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	env.factory.On("Create").Return(env.uow).Once()

	cmd := changeCmd(t, d, delivery.Cancelled, admin, account.RoleAdmin)
	updated, err := env.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Cancelled, updated.Status())
	assert.Equal(t, [][2]string{{"pending", "cancelled"}}, env.recorder.transitions)
	assert.Equal(t, []string{d.TrackingCode().String()}, env.cache.invalidated)
	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, "pending", env.publisher.events[0].From)
	assert.Equal(t, "cancelled", env.publisher.events[0].To)
	assert.Equal(t, 1, env.notifier.customerCalls)
	require.Len(t, env.log.records, 1)
	env.repo.AssertExpectations(t)
	env.uow.AssertExpectations(t)
}

func TestChangeStatusCommandHandler_Handle_DeliveredCreditsDriver(t *testing.T) {
	ctx := t.Context()
	env := newChangeStatusEnv()
	driver := testDriver(t)
	d := testDelivery(t, kernel.NewUUID())
	require.NoError(t, d.AssignDriver(driver.ID(), driver.Name(), time.Now()))
	require.NoError(t, d.ChangeStatus(delivery.PickedUp, nil, "", time.Now()))
	require.NoError(t, d.ChangeStatus(delivery.InTransit, nil, "", time.Now()))
	require.NoError(t, d.ChangeStatus(delivery.OutForDelivery, nil, "", time.Now()))

	env.uow.On("Begin", ctx).Return(nil).Once()
	env.uow.On("DeliveryRepository").Return(env.repo)
	env.uow.On("UserRepository").Return(env.users)
	env.repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once()
	env.users.On("GetByID", mock.Anything, driver.ID()).Return(driver, nil).Once()
	env.users.On("Update", mock.Anything, driver).Return(nil).Once()
	env.repo.On("Update", mock.Anything, d).Return(nil).Once()
	env.uow.On("Commit", ctx).Return(nil).Once()
	env.uow.On("Rollback", ctx).Return(nil).Once()
	env.factory.On("Create").Return(env.uow).Once()

	cmd := changeCmd(t, d, delivery.Delivered, driver.ID(), account.RoleDriver)
	updated, err := env.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, updated.Status())
	assert.Equal(t, 1, driver.Driver().DeliveriesCompleted)
	require.NotNil(t, updated.ActualDeliveryTime())
	env.users.AssertExpectations(t)
}

func TestChangeStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	env := newChangeStatusEnv()
	d := testDelivery(t, kernel.NewUUID())

	env.uow.On("Begin", ctx).Return(nil).Once()
	env.uow.On("DeliveryRepository").Return(env.repo).Once()
	env.repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once()
	env.uow.On("Rollback", ctx).Return(nil).Once()
	env.factory.On("Create").Return(env.uow).Once()

	cmd := changeCmd(t, d, delivery.Delivered, kernel.NewUUID(), account.RoleAdmin)
	updated, err := env.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, delivery.Pending, d.Status(), "aggregate untouched on denial")
	assert.Empty(t, env.recorder.transitions)
	assert.Empty(t, env.publisher.events)
	assert.Zero(t, env.notifier.customerCalls)
}

func TestChangeStatusCommandHandler_Handle_DriverScopedToOwnDeliveries(t *testing.T) {
	ctx := t.Context()
	env := newChangeStatusEnv()
	d := testDelivery(t, kernel.NewUUID())
	require.NoError(t, d.AssignDriver(kernel.NewUUID(), "Musa Bello", time.Now()))
	stranger := kernel.NewUUID()

	env.uow.On("Begin", ctx).Return(nil).Once()
	env.uow.On("DeliveryRepository").Return(env.repo).Once()
	env.repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once()
	env.uow.On("Rollback", ctx).Return(nil).Once()
	env.factory.On("Create").Return(env.uow).Once()

	cmd := changeCmd(t, d, delivery.PickedUp, stranger, account.RoleDriver)
	_, err := env.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound,
		"foreign deliveries look like 404, not 403")
}

func TestChangeStatusCommandHandler_Handle_ConcurrentModification(t *testing.T) {
	ctx := t.Context()
	env := newChangeStatusEnv()
	d := testDelivery(t, kernel.NewUUID())
	conflict := errs.NewConcurrentModificationError("delivery", d.ID().String())

	env.uow.On("Begin", ctx).Return(nil).Once()
	env.uow.On("DeliveryRepository").Return(env.repo)
	env.repo.On("GetByID", mock.Anything, d.ID()).Return(d, nil).Once()
	env.repo.On("Update", mock.Anything, d).Return(conflict).Once()
	env.uow.On("Rollback", ctx).Return(nil).Once()
	env.factory.On("Create").Return(env.uow).Once()

	cmd := changeCmd(t, d, delivery.Cancelled, kernel.NewUUID(), account.RoleAdmin)
	_, err := env.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
	assert.Empty(t, env.publisher.events, "losing writer publishes nothing")
}

func TestChangeStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	env := newChangeStatusEnv()
	id := kernel.NewUUID()

	env.uow.On("Begin", ctx).Return(nil).Once()
	env.uow.On("DeliveryRepository").Return(env.repo).Once()
	env.repo.On("GetByID", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("delivery", id.String())).Once()
	env.uow.On("Rollback", ctx).Return(nil).Once()
	env.factory.On("Create").Return(env.uow).Once()

	cmd, err := commands.NewChangeStatusCommand(id, delivery.Cancelled, nil, "",
		kernel.NewUUID(), account.RoleAdmin, time.Now())
	require.NoError(t, err)

	_, err = env.handler.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
