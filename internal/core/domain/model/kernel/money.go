package kernel

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// Money is a monetary amount in whole currency units (naira). Prices are
// computed once at creation time and rounded to the nearest whole unit, so
// no fractional representation is needed.
type Money int64

// Validate rejects negative amounts.
func (m Money) Validate() error {
	if m < 0 {
		return errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%d is negative", int64(m)))
	}
	return nil
}
