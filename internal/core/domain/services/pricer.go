package services

import (
	"math"

	"swiftdrop/internal/core/domain/model/delivery"
	"swiftdrop/internal/core/domain/model/kernel"
)

// Tariff holds the pricing inputs. Amounts are in the currency's minor-unit
// free integer form used across the system.
type Tariff struct {
	// BaseFare is charged on every delivery.
	BaseFare kernel.Money

	// PerKilogram is added for each kilogram of package weight.
	PerKilogram kernel.Money

	// InterCitySurcharge is added when pickup and drop-off city strings
	// differ. The comparison is exact: "Lagos" and "lagos" count as
	// different cities and incur the surcharge.
	InterCitySurcharge kernel.Money

	// PriorityMultipliers is the published urgency scale. The multipliers
	// are part of the tariff but are not applied to quotes; priority
	// currently affects dispatch ordering only.
	PriorityMultipliers map[delivery.Priority]float64
}

// DefaultTariff returns the standard tariff.
func DefaultTariff() Tariff {
	return Tariff{
		BaseFare:           1000,
		PerKilogram:        100,
		InterCitySurcharge: 2000,
		PriorityMultipliers: map[delivery.Priority]float64{
			delivery.PriorityLow:    1,
			delivery.PriorityMedium: 1.2,
			delivery.PriorityHigh:   1.5,
			delivery.PriorityUrgent: 2,
		},
	}
}

// Pricer computes delivery quotes. Quotes are deterministic: the same
// package and route always produce the same amount, and a delivery is priced
// exactly once at creation and never re-priced on edits.
type Pricer struct {
	tariff Tariff
}

// NewPricer creates a Pricer with the given tariff.
func NewPricer(tariff Tariff) *Pricer {
	return &Pricer{tariff: tariff}
}

// Quote returns the price for carrying pkg from pickup to dropoff:
// the base fare, plus the per-kilogram charge for the package weight, plus
// the inter-city surcharge when the two city strings differ. A missing
// weight contributes nothing. The result is rounded to the nearest whole
// unit and is never negative for valid inputs.
func (p *Pricer) Quote(pkg delivery.PackageDetails, pickup, dropoff delivery.Address) kernel.Money {
	amount := float64(p.tariff.BaseFare)
	amount += pkg.Weight() * float64(p.tariff.PerKilogram)
	if pickup.City() != dropoff.City() {
		amount += float64(p.tariff.InterCitySurcharge)
	}
	return kernel.Money(math.Round(amount))
}
