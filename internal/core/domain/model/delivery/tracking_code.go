package delivery

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

// TrackingCodePrefix starts every tracking code.
const TrackingCodePrefix = "TRK"

const trackingCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrTrackingCodeIsNotConstructed indicates a TrackingCode that was not
// created through a constructor.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking code must be created via GenerateTrackingCode or TrackingCodeFromString")

// TrackingCode is the public, human-shareable identifier of a delivery,
// distinct from its internal id. Codes are uppercase alphanumeric, unique
// across all deliveries, and immutable once assigned.
type TrackingCode struct {
	value string
	guard guard.ConstructorGuard
}

// GenerateTrackingCode mints a best-effort-unique code: the TRK prefix, the
// millisecond timestamp in base 36, and four random base-36 characters, all
// uppercased. Uniqueness is ultimately enforced by the persistence layer's
// unique constraint; on a collision the creation fails with
// DuplicateIdentifierError and the caller regenerates.
func GenerateTrackingCode(now time.Time) TrackingCode {
	var random strings.Builder
	for range 4 {
		random.WriteByte(trackingCodeAlphabet[rand.IntN(len(trackingCodeAlphabet))])
	}

	value := TrackingCodePrefix +
		strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)) +
		random.String()

	return TrackingCode{value: value, guard: guard.NewConstructorGuard()}
}

// TrackingCodeFromString normalizes and validates an externally supplied
// code. Input is uppercased, so lookups are case-insensitive.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if !strings.HasPrefix(normalized, TrackingCodePrefix) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("trackingCode",
			fmt.Errorf("%q does not start with %s", s, TrackingCodePrefix))
	}
	for _, r := range normalized {
		if !strings.ContainsRune(trackingCodeAlphabet, r) {
			return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("trackingCode",
				fmt.Errorf("%q contains non-alphanumeric characters", s))
		}
	}

	return TrackingCode{value: normalized, guard: guard.NewConstructorGuard()}, nil
}

// String returns the uppercase code value.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual reports whether two codes hold the same value.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// Validate returns ErrTrackingCodeIsNotConstructed for zero values.
func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}
