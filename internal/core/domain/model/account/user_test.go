package account_test

import (
	"testing"
	"time"

	"swiftdrop/internal/core/domain/model/account"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(t *testing.T) *account.User {
	t.Helper()
	u, err := account.NewUser(kernel.NewUUID(), "Ada Obi", "ada@example.com",
		"+2348012345678", "s3cret!", account.RoleCustomer, nil, time.Now())
	require.NoError(t, err)
	return u
}

func newDriver(t *testing.T) *account.User {
	t.Helper()
	u, err := account.NewUser(kernel.NewUUID(), "Musa Bello", "musa@example.com",
		"+2348098765432", "s3cret!", account.RoleDriver,
		&account.DriverProfile{VehicleType: "motorcycle", VehicleNumber: "KJA-442-XA", LicenseNumber: "LIC-9921"},
		time.Now())
	require.NoError(t, err)
	return u
}

func TestParseRole(t *testing.T) {
	t.Run("should parse wire names", func(t *testing.T) {
		testCases := map[string]account.Role{
			"customer": account.RoleCustomer,
			"driver":   account.RoleDriver,
			"admin":    account.RoleAdmin,
		}
		for name, expected := range testCases {
			role, err := account.ParseRole(name)
			require.NoError(t, err)
			assert.Equal(t, expected, role)
		}
	})

	t.Run("empty input should default to customer", func(t *testing.T) {
		role, err := account.ParseRole("")
		require.NoError(t, err)
		assert.Equal(t, account.RoleCustomer, role)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		role, err := account.ParseRole("superuser")
		require.Error(t, err)
		assert.Equal(t, account.RoleUnknown, role)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestNewUser(t *testing.T) {
	t.Run("should create an active customer", func(t *testing.T) {
		u := newCustomer(t)

		require.NoError(t, u.Validate())
		assert.Equal(t, account.RoleCustomer, u.Role())
		assert.True(t, u.IsActive())
		assert.Nil(t, u.Driver())
		assert.NotEmpty(t, u.PasswordHash())
		assert.NotContains(t, u.PasswordHash(), "s3cret!")
	})

	t.Run("should lowercase and trim the email", func(t *testing.T) {
		u, err := account.NewUser(kernel.NewUUID(), "Ada Obi", "  Ada@Example.COM ",
			"+2348012345678", "s3cret!", account.RoleCustomer, nil, time.Now())

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", u.Email())
	})

	t.Run("driver should start available with zero completions", func(t *testing.T) {
		u := newDriver(t)

		profile := u.Driver()
		require.NotNil(t, profile)
		assert.True(t, profile.IsAvailable)
		assert.Zero(t, profile.DeliveriesCompleted)
		assert.Equal(t, "motorcycle", profile.VehicleType)
		assert.True(t, u.IsAssignable())
	})

	t.Run("driver without an explicit profile gets an empty one", func(t *testing.T) {
		u, err := account.NewUser(kernel.NewUUID(), "Musa Bello", "musa2@example.com",
			"+2348098765432", "s3cret!", account.RoleDriver, nil, time.Now())

		require.NoError(t, err)
		require.NotNil(t, u.Driver())
		assert.True(t, u.Driver().IsAvailable)
	})

	t.Run("non-driver roles should drop a supplied profile", func(t *testing.T) {
		u, err := account.NewUser(kernel.NewUUID(), "Ada Obi", "ada2@example.com",
			"+2348012345678", "s3cret!", account.RoleCustomer,
			&account.DriverProfile{VehicleType: "van"}, time.Now())

		require.NoError(t, err)
		assert.Nil(t, u.Driver())
	})

	t.Run("should reject short passwords", func(t *testing.T) {
		u, err := account.NewUser(kernel.NewUUID(), "Ada Obi", "ada@example.com",
			"+2348012345678", "abc", account.RoleCustomer, nil, time.Now())

		require.Error(t, err)
		assert.Nil(t, u)
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("should reject a malformed email", func(t *testing.T) {
		u, err := account.NewUser(kernel.NewUUID(), "Ada Obi", "not-an-email",
			"+2348012345678", "s3cret!", account.RoleCustomer, nil, time.Now())

		require.Error(t, err)
		assert.Nil(t, u)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("should reject missing required fields", func(t *testing.T) {
		_, err := account.NewUser(kernel.NewUUID(), "", "ada@example.com",
			"+2348012345678", "s3cret!", account.RoleCustomer, nil, time.Now())
		require.Error(t, err)

		_, err = account.NewUser(kernel.NewUUID(), "Ada Obi", "",
			"+2348012345678", "s3cret!", account.RoleCustomer, nil, time.Now())
		require.Error(t, err)

		_, err = account.NewUser(kernel.NewUUID(), "Ada Obi", "ada@example.com",
			"", "s3cret!", account.RoleCustomer, nil, time.Now())
		require.Error(t, err)
	})
}

func TestUser_ComparePassword(t *testing.T) {
	u := newCustomer(t)

	t.Run("should accept the original password", func(t *testing.T) {
		require.NoError(t, u.ComparePassword("s3cret!"))
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		err := u.ComparePassword("wrong-password")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUser_RecordCompletedDelivery(t *testing.T) {
	t.Run("should increment the driver counter once per call", func(t *testing.T) {
		u := newDriver(t)

		require.NoError(t, u.RecordCompletedDelivery())
		require.NoError(t, u.RecordCompletedDelivery())

		assert.Equal(t, 2, u.Driver().DeliveriesCompleted)
	})

	t.Run("should reject non-drivers", func(t *testing.T) {
		u := newCustomer(t)

		require.Error(t, u.RecordCompletedDelivery())
	})
}

func TestUser_Availability(t *testing.T) {
	t.Run("unavailable driver is not assignable", func(t *testing.T) {
		u := newDriver(t)

		require.NoError(t, u.SetAvailability(false))

		assert.False(t, u.Driver().IsAvailable)
		assert.False(t, u.IsAssignable())
	})

	t.Run("deactivated driver is not assignable", func(t *testing.T) {
		u := newDriver(t)

		u.Deactivate()

		assert.False(t, u.IsActive())
		assert.False(t, u.IsAssignable())
	})

	t.Run("customers are never assignable", func(t *testing.T) {
		assert.False(t, newCustomer(t).IsAssignable())
	})

	t.Run("should reject availability changes on non-drivers", func(t *testing.T) {
		require.Error(t, newCustomer(t).SetAvailability(true))
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("should rehydrate a persisted driver", func(t *testing.T) {
		u, err := account.RestoreUser(account.RestoreUserParams{
			ID:           kernel.NewUUID(),
			Name:         "Musa Bello",
			Email:        "musa@example.com",
			Phone:        "+2348098765432",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
			Role:         account.RoleDriver,
			Driver:       &account.DriverProfile{IsAvailable: false, DeliveriesCompleted: 17, Rating: 4.6},
			IsActive:     true,
			CreatedAt:    time.Now(),
		})

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.Equal(t, 17, u.Driver().DeliveriesCompleted)
		assert.False(t, u.IsAssignable())
	})

	t.Run("should reject a missing password hash", func(t *testing.T) {
		_, err := account.RestoreUser(account.RestoreUserParams{
			ID:   kernel.NewUUID(),
			Role: account.RoleCustomer,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "passwordHash")
	})
}
