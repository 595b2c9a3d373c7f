package delivery

import (
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

// ErrAddressIsNotConstructed indicates an Address that was not created via
// NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is a pickup or drop-off location: free-text postal fields plus an
// optional geocoordinate pair. Line, city, and state are required.
type Address struct {
	line     string
	city     string
	state    string
	zipCode  string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates an Address. ZipCode and location are optional; a nil
// location means no coordinates were captured.
func NewAddress(line, city, state, zipCode string, location *kernel.GeoPoint) (Address, error) {
	switch {
	case line == "":
		return Address{}, errs.NewValueIsRequiredError("address")
	case city == "":
		return Address{}, errs.NewValueIsRequiredError("city")
	case state == "":
		return Address{}, errs.NewValueIsRequiredError("state")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return Address{}, err
		}
	}

	return Address{
		line:     line,
		city:     city,
		state:    state,
		zipCode:  zipCode,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Line returns the street address line.
func (a Address) Line() string {
	return a.line
}

// City returns the city name as entered. City names are compared exactly,
// case-sensitively, by the pricer.
func (a Address) City() string {
	return a.city
}

// State returns the state name.
func (a Address) State() string {
	return a.state
}

// ZipCode returns the postal code, possibly empty.
func (a Address) ZipCode() string {
	return a.zipCode
}

// Location returns the coordinates, or nil if none were captured.
func (a Address) Location() *kernel.GeoPoint {
	return a.location
}

// Validate returns ErrAddressIsNotConstructed for zero values.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
