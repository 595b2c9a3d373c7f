package commands_test

import (
	"errors"
	"testing"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateCommand(t *testing.T) commands.CreateDeliveryCommand {
	t.Helper()
	cmd, err := commands.NewCreateDeliveryCommand(
		kernel.NewUUID(), kernel.NewUUID(), "Ada Obi", "+2348012345678",
		testAddress(t, "Lagos"), testAddress(t, "Lagos"), testPackage(t),
		delivery.DefaultPriority, "", nil)
	require.NoError(t, err)
	return cmd
}

func TestCreateDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	repo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &fakeNotifier{}
	log := &fakeNotificationLog{}
	h := commands.NewCreateDeliveryCommandHandler(factory, testPricer(), notifier, log, discardLogger())

	createdBefore := testutil.ToFloat64(observability.DeliveriesCreatedTotal)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, createdBefore+1, testutil.ToFloat64(observability.DeliveriesCreatedTotal))
	assert.Equal(t, delivery.Pending, created.Status())
	// 1000 base + 3kg * 100, same city
	assert.Equal(t, kernel.Money(1300), created.Price())
	assert.NotEmpty(t, created.TrackingCode().String())
	assert.Equal(t, 1, notifier.customerCalls)
	require.Len(t, log.records, 1)
	assert.Equal(t, delivery.Pending, log.records[0].Status)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateDeliveryCommand{} // not constructed properly

	factory := new(MockDeliveryUoWFactory)
	h := commands.NewCreateDeliveryCommandHandler(factory, testPricer(), &fakeNotifier{}, &fakeNotificationLog{}, discardLogger())

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
}

func TestCreateDeliveryCommandHandler_Handle_DuplicateTrackingCodeRetries(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	duplicate := errs.NewDuplicateIdentifierError("TRKDUP", errors.New("unique constraint"))

	repo := new(MockDeliveryRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(duplicate).Twice()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("DeliveryRepository").Return(repo).Times(3)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := commands.NewCreateDeliveryCommandHandler(factory, testPricer(), &fakeNotifier{}, &fakeNotificationLog{}, discardLogger())

	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_DuplicateExhaustsRetries(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	duplicate := errs.NewDuplicateIdentifierError("TRKDUP", errors.New("unique constraint"))

	repo := new(MockDeliveryRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).Return(duplicate).Times(3)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("DeliveryRepository").Return(repo).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	notifier := &fakeNotifier{}
	h := commands.NewCreateDeliveryCommandHandler(factory, testPricer(), notifier, &fakeNotificationLog{}, discardLogger())

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, errs.ErrDuplicateIdentifier)
	assert.Zero(t, notifier.customerCalls, "no notification without a committed delivery")
	repo.AssertExpectations(t)
}

func TestCreateDeliveryCommandHandler_Handle_NotificationFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	repo := new(MockDeliveryRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &fakeNotifier{err: errors.New("twilio down")}
	log := &fakeNotificationLog{}
	h := commands.NewCreateDeliveryCommandHandler(factory, testPricer(), notifier, log, discardLogger())

	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err, "notification dispatch is best effort")
	require.NotNil(t, created)
	assert.Empty(t, log.records)
}
