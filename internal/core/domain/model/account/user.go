package account

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
)

// ErrUserIsNotConstructed indicates a User that was not created through
// NewUser or RestoreUser.
var ErrUserIsNotConstructed = errs.NewValueIsRequiredError(
	"user must be created via NewUser or RestoreUser")

// minPasswordLength is enforced on registration, not on login.
const minPasswordLength = 6

// DriverProfile holds driver-only attributes. Nil on customers and admins.
type DriverProfile struct {
	VehicleType   string
	VehicleNumber string
	LicenseNumber string

	// Rating is the average review score, 0 when unrated.
	Rating float64

	// IsAvailable gates driver assignment.
	IsAvailable bool

	// DeliveriesCompleted counts deliveries that reached delivered status
	// with this driver. Incremented exactly once per delivery.
	DeliveriesCompleted int
}

// User is the aggregate root for an account of any role.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	phone        string
	passwordHash string
	role         Role
	driver       *DriverProfile
	isActive     bool
	createdAt    time.Time

	isConstructed bool
}

// NewUser registers an account, hashing the plaintext password with bcrypt.
// Email is lowercased so lookups are case-insensitive. Drivers start
// available with zero completed deliveries.
func NewUser(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	plainPassword string,
	role Role,
	driver *DriverProfile,
	now time.Time,
) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(normalizedEmail, "@") {
		return nil, errs.NewValueIsInvalidError("email")
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}
	if len(plainPassword) < minPasswordLength {
		return nil, errs.NewValueIsInvalidError("password")
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if role == RoleDriver && driver == nil {
		driver = &DriverProfile{}
	}
	if role != RoleDriver {
		driver = nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("password", err)
	}

	u := &User{
		id:            id,
		name:          name,
		email:         normalizedEmail,
		phone:         phone,
		passwordHash:  string(hash),
		role:          role,
		driver:        driver,
		isActive:      true,
		createdAt:     now,
		isConstructed: true,
	}
	if u.driver != nil {
		u.driver.IsAvailable = true
		u.driver.DeliveriesCompleted = 0
	}

	return u, nil
}

// RestoreUserParams carries persisted user state back into the domain.
type RestoreUserParams struct {
	ID           kernel.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Driver       *DriverProfile
	IsActive     bool
	CreatedAt    time.Time
}

// RestoreUser reconstructs an aggregate from persistence.
func RestoreUser(params RestoreUserParams) (*User, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, err
	}
	if err := params.Role.Validate(); err != nil {
		return nil, err
	}
	if params.PasswordHash == "" {
		return nil, errs.NewValueIsRequiredError("passwordHash")
	}

	return &User{
		id:            params.ID,
		name:          params.Name,
		email:         params.Email,
		phone:         params.Phone,
		passwordHash:  params.PasswordHash,
		role:          params.Role,
		driver:        params.Driver,
		isActive:      params.IsActive,
		createdAt:     params.CreatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the User was created through a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ComparePassword checks a plaintext password against the stored hash. A
// mismatch returns a ValueIsInvalidError; callers surface it as a generic
// credentials failure without revealing which part was wrong.
func (u *User) ComparePassword(plainPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(plainPassword)); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("credentials", err)
	}
	return nil
}

// ChangePassword replaces the stored hash. The same minimum length as
// registration applies; verifying the current password is the caller's job.
func (u *User) ChangePassword(plainPassword string) error {
	if len(plainPassword) < minPasswordLength {
		return errs.NewValueIsInvalidError("password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("password", err)
	}
	u.passwordHash = string(hash)
	return nil
}

// RecordCompletedDelivery bumps the driver's completion counter. Only valid
// on drivers.
func (u *User) RecordCompletedDelivery() error {
	if u.role != RoleDriver || u.driver == nil {
		return errs.NewValueIsInvalidError("role")
	}
	u.driver.DeliveriesCompleted++
	return nil
}

// SetAvailability flips the driver availability flag. Only valid on drivers.
func (u *User) SetAvailability(available bool) error {
	if u.role != RoleDriver || u.driver == nil {
		return errs.NewValueIsInvalidError("role")
	}
	u.driver.IsAvailable = available
	return nil
}

// Deactivate disables the account; deactivated users cannot log in or be
// assigned deliveries.
func (u *User) Deactivate() {
	u.isActive = false
}

// IsAssignable reports whether this user can take a delivery right now: an
// active, available driver.
func (u *User) IsAssignable() bool {
	return u.role == RoleDriver && u.isActive && u.driver != nil && u.driver.IsAvailable
}

// ID returns the account identifier.
func (u *User) ID() kernel.UUID { return u.id }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Email returns the lowercased login email.
func (u *User) Email() string { return u.email }

// Phone returns the contact phone.
func (u *User) Phone() string { return u.phone }

// PasswordHash returns the stored bcrypt hash, for persistence only.
func (u *User) PasswordHash() string { return u.passwordHash }

// Role returns the account role.
func (u *User) Role() Role { return u.role }

// Driver returns a copy of the driver profile, or nil for non-drivers.
func (u *User) Driver() *DriverProfile {
	if u.driver == nil {
		return nil
	}
	profile := *u.driver
	return &profile
}

// IsActive reports whether the account is enabled.
func (u *User) IsActive() bool { return u.isActive }

// CreatedAt returns the registration timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }
