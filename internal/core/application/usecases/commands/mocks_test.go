package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/services"
	"swiftdrop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) GetByID(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByTrackingCode(ctx context.Context, code delivery.TrackingCode) (*delivery.Delivery, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeliveryRepository) AppendNotification(ctx context.Context, id kernel.UUID, record delivery.NotificationRecord) error {
	args := m.Called(ctx, id, record)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *account.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *account.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id kernel.UUID) (*account.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies every unit of work slice used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

// Side-effect fakes. The handlers treat all of these as best effort, so the
// tests only need to see that they were reached, not to script them.
type fakeNotifier struct {
	customerCalls int
	driverCalls   int
	err           error
}

func (f *fakeNotifier) NotifyCustomer(_ context.Context, _ *delivery.Delivery) (string, error) {
	f.customerCalls++
	if f.err != nil {
		return "", f.err
	}
	return "SM-test", nil
}

func (f *fakeNotifier) NotifyDriver(_ context.Context, _ *delivery.Delivery, _ string) (string, error) {
	f.driverCalls++
	if f.err != nil {
		return "", f.err
	}
	return "SM-test", nil
}

type fakePublisher struct {
	events []ports.DeliveryStatusChangedEvent
	err    error
}

func (f *fakePublisher) PublishDeliveryStatusChanged(_ context.Context, event ports.DeliveryStatusChangedEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Get(_ context.Context, _ string) ([]byte, bool) { return nil, false }

func (f *fakeCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }

func (f *fakeCache) Invalidate(_ context.Context, code string) error {
	f.invalidated = append(f.invalidated, code)
	return nil
}

type fakeRecorder struct {
	transitions [][2]string
}

func (f *fakeRecorder) ObserveTransition(from, to string) {
	f.transitions = append(f.transitions, [2]string{from, to})
}

type fakeNotificationLog struct {
	records []delivery.NotificationRecord
}

func (f *fakeNotificationLog) AppendNotification(_ context.Context, _ kernel.UUID, record delivery.NotificationRecord) error {
	f.records = append(f.records, record)
	return nil
}

// Aggregate builders shared across the handler tests.

func testAddress(t *testing.T, city string) delivery.Address {
	t.Helper()
	addr, err := delivery.NewAddress("1 Test Street", city, "Test State", "", nil)
	require.NoError(t, err)
	return addr
}

func testPackage(t *testing.T) delivery.PackageDetails {
	t.Helper()
	pkg, err := delivery.NewPackageDetails("Box of parts", 3,
		delivery.Dimensions{}, 0, delivery.CategoryOther)
	require.NoError(t, err)
	return pkg
}

func testDelivery(t *testing.T, customerID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		delivery.GenerateTrackingCode(time.Now()),
		customerID,
		"Ada Obi",
		"+2348012345678",
		testAddress(t, "Lagos"),
		testAddress(t, "Abuja"),
		testPackage(t),
		delivery.DefaultPriority,
		"",
		nil,
		kernel.Money(3300),
		time.Now(),
	)
	require.NoError(t, err)
	return d
}

func testDriver(t *testing.T) *account.User {
	t.Helper()
	u, err := account.NewUser(kernel.NewUUID(), "Musa Bello", "musa@example.com",
		"+2348098765432", "s3cret!", account.RoleDriver, nil, time.Now())
	require.NoError(t, err)
	return u
}

func testPricer() *services.Pricer {
	return services.NewPricer(services.DefaultTariff())
}
