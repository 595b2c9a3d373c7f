package account

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// Role determines what a user may see and do.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleCustomer may create deliveries and see only their own.
	RoleCustomer

	// RoleDriver may see and progress deliveries assigned to them.
	RoleDriver

	// RoleAdmin may see and manage everything.
	RoleAdmin
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleDriver:   "driver",
		RoleAdmin:    "admin",
	}
}

// ParseRole converts a wire value into a Role. An empty string defaults to
// customer, matching open registration.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleCustomer, nil
	}
	for role, name := range roleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks membership in the role set.
func (r Role) Validate() error {
	if r == RoleCustomer || r == RoleDriver || r == RoleAdmin {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
}

// String returns the wire name. Implements fmt.Stringer.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
