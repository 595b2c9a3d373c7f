package queries_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"

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

// fakeCache is an in-memory TrackingCache without expiry; the handler tests
// never sleep past a TTL.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, code string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[code]
	return payload, ok
}

func (c *fakeCache) Set(_ context.Context, code string, payload []byte, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[code] = payload
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, code)
	return nil
}

func testDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	pickup, err := delivery.NewAddress("14 Marina Road", "Lagos", "Lagos", "", nil)
	require.NoError(t, err)
	dropoff, err := delivery.NewAddress("3 Unity Close", "Abuja", "FCT", "", nil)
	require.NoError(t, err)
	pkg, err := delivery.NewPackageDetails("Documents", 0.5, delivery.Dimensions{},
		kernel.Money(0), delivery.CategoryDocuments)
	require.NoError(t, err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		delivery.GenerateTrackingCode(time.Now()),
		kernel.NewUUID(),
		"Ada Obi",
		"+2348012345678",
		pickup, dropoff, pkg,
		delivery.PriorityMedium,
		"",
		nil,
		kernel.Money(3050),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return d
}

func testCustomer(t *testing.T, email string) *account.User {
	t.Helper()

	user, err := account.NewUser(
		kernel.NewUUID(),
		"Ada Obi",
		email,
		"+2348012345678",
		"s3cret!",
		account.RoleCustomer,
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return user
}
