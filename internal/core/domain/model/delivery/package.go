package delivery

import (
	"fmt"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

// Category classifies the package contents.
type Category int

const (
	CategoryOther Category = iota
	CategoryDocuments
	CategoryElectronics
	CategoryFood
	CategoryClothing
	CategoryFurniture
)

func categoryStrings() map[Category]string {
	return map[Category]string{
		CategoryOther:       "other",
		CategoryDocuments:   "documents",
		CategoryElectronics: "electronics",
		CategoryFood:        "food",
		CategoryClothing:    "clothing",
		CategoryFurniture:   "furniture",
	}
}

// ParseCategory converts a wire value into a Category. The empty string
// yields the default CategoryOther.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryOther, nil
	}
	for category, name := range categoryStrings() {
		if name == s {
			return category, nil
		}
	}
	return CategoryOther, errs.NewValueIsInvalidErrorWithCause("category",
		fmt.Errorf("%q is not a valid category", s))
}

// String returns the wire name of the category.
func (c Category) String() string {
	if str, ok := categoryStrings()[c]; ok {
		return str
	}
	return "other"
}

// Dimensions are the package measurements in centimetres. The zero value
// means not provided.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// ErrPackageDetailsAreNotConstructed indicates PackageDetails that were not
// created via NewPackageDetails.
var ErrPackageDetailsAreNotConstructed = errs.NewValueIsRequiredError(
	"package details must be created via NewPackageDetails constructor")

// PackageDetails describes what is being shipped. Description is required;
// weight (kilograms), dimensions, and declared value are optional.
type PackageDetails struct {
	description   string
	weight        float64
	dimensions    Dimensions
	declaredValue kernel.Money
	category      Category

	guard guard.ConstructorGuard
}

// NewPackageDetails creates PackageDetails. A zero weight means the weight
// was not provided; negative weights are rejected.
func NewPackageDetails(
	description string,
	weight float64,
	dimensions Dimensions,
	declaredValue kernel.Money,
	category Category,
) (PackageDetails, error) {
	if description == "" {
		return PackageDetails{}, errs.NewValueIsRequiredError("packageDetails.description")
	}
	if weight < 0 {
		return PackageDetails{}, errs.NewValueIsInvalidErrorWithCause("packageDetails.weight",
			fmt.Errorf("%g is negative", weight))
	}
	if err := declaredValue.Validate(); err != nil {
		return PackageDetails{}, err
	}

	return PackageDetails{
		description:   description,
		weight:        weight,
		dimensions:    dimensions,
		declaredValue: declaredValue,
		category:      category,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Description returns the free-text package description.
func (p PackageDetails) Description() string {
	return p.description
}

// Weight returns the weight in kilograms, zero when not provided.
func (p PackageDetails) Weight() float64 {
	return p.weight
}

// Dimensions returns the measurements, zero when not provided.
func (p PackageDetails) Dimensions() Dimensions {
	return p.dimensions
}

// DeclaredValue returns the declared monetary value, zero when not provided.
func (p PackageDetails) DeclaredValue() kernel.Money {
	return p.declaredValue
}

// Category returns the package category.
func (p PackageDetails) Category() Category {
	return p.category
}

// Validate returns ErrPackageDetailsAreNotConstructed for zero values.
func (p PackageDetails) Validate() error {
	return p.guard.Validate(ErrPackageDetailsAreNotConstructed)
}
