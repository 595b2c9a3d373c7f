package delivery

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// Priority is the requested urgency of a delivery. It is recorded on the
// delivery and exposed to dispatchers; it does not currently feed the price
// calculation (see services.Tariff).
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// DefaultPriority is applied when a creation request omits the priority.
const DefaultPriority = PriorityMedium

func priorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityMedium: "medium",
		PriorityHigh:   "high",
		PriorityUrgent: "urgent",
	}
}

// ParsePriority converts a wire value into a Priority. The empty string
// yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return DefaultPriority, nil
	}
	for priority, name := range priorityStrings() {
		if name == s {
			return priority, nil
		}
	}
	return DefaultPriority, errs.NewValueIsInvalidErrorWithCause("priority",
		fmt.Errorf("%q is not a valid priority", s))
}

// String returns the wire name of the priority.
func (p Priority) String() string {
	if str, ok := priorityStrings()[p]; ok {
		return str
	}
	return "medium"
}

// PaymentStatus tracks whether the delivery fee has been settled.
type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota
	PaymentPaid
	PaymentRefunded
)

func paymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentRefunded: "refunded",
	}
}

// ParsePaymentStatus converts a wire value into a PaymentStatus. The empty
// string yields PaymentPending.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	if s == "" {
		return PaymentPending, nil
	}
	for status, name := range paymentStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return PaymentPending, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the wire name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := paymentStatusStrings()[p]; ok {
		return str
	}
	return "pending"
}
