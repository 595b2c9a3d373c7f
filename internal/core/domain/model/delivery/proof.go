package delivery

import (
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

// ErrProofIsNotConstructed indicates a ProofOfDelivery that was not created
// via NewProofOfDelivery.
var ErrProofIsNotConstructed = errs.NewValueIsRequiredError(
	"proof of delivery must be created via NewProofOfDelivery constructor")

// ProofOfDelivery captures evidence collected at handover: a hosted photo
// reference, an optional signature, who received the package, and where and
// when. It is attached only when a delivery transitions into delivered.
type ProofOfDelivery struct {
	photoURL   string
	photoID    string
	signature  string
	receivedBy string
	notes      string
	location   *kernel.GeoPoint
	timestamp  time.Time

	guard guard.ConstructorGuard
}

// NewProofOfDelivery creates a proof record. ReceivedBy is required; the
// photo reference, signature, notes, and location are optional.
func NewProofOfDelivery(
	photoURL, photoID, signature, receivedBy, notes string,
	location *kernel.GeoPoint,
	timestamp time.Time,
) (ProofOfDelivery, error) {
	if receivedBy == "" {
		return ProofOfDelivery{}, errs.NewValueIsRequiredError("proofOfDelivery.receivedBy")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return ProofOfDelivery{}, err
		}
	}

	return ProofOfDelivery{
		photoURL:   photoURL,
		photoID:    photoID,
		signature:  signature,
		receivedBy: receivedBy,
		notes:      notes,
		location:   location,
		timestamp:  timestamp,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// PhotoURL returns the hosted photo URL, possibly empty.
func (p ProofOfDelivery) PhotoURL() string {
	return p.photoURL
}

// PhotoID returns the storage identifier of the photo, possibly empty.
func (p ProofOfDelivery) PhotoID() string {
	return p.photoID
}

// Signature returns the captured signature data, possibly empty.
func (p ProofOfDelivery) Signature() string {
	return p.signature
}

// ReceivedBy returns the name of the person who accepted the package.
func (p ProofOfDelivery) ReceivedBy() string {
	return p.receivedBy
}

// Notes returns free-text handover notes, possibly empty.
func (p ProofOfDelivery) Notes() string {
	return p.notes
}

// Location returns where the handover happened, or nil.
func (p ProofOfDelivery) Location() *kernel.GeoPoint {
	return p.location
}

// Timestamp returns when the handover happened.
func (p ProofOfDelivery) Timestamp() time.Time {
	return p.timestamp
}

// Validate returns ErrProofIsNotConstructed for zero values.
func (p ProofOfDelivery) Validate() error {
	return p.guard.Validate(ErrProofIsNotConstructed)
}
