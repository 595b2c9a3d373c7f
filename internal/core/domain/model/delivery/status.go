package delivery

import (
	"fmt"

	"swiftdrop/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery. It implements a fixed
// state machine:
//
//	pending ──> assigned ──> picked_up ──> in_transit ──> out_for_delivery ──> delivered
//	   │            │            │              │                │
//	   │            │            └──> failed <──┴────────────────┘
//	   └──> cancelled
//
// delivered, failed, and cancelled are terminal; they have no outgoing
// transitions. Re-applying the current status is denied like any other
// unlisted transition.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value
	// catches uninitialized Status fields.
	Unknown Status = iota

	// Pending is the initial status: waiting for driver assignment.
	Pending

	// Assigned indicates a driver has been assigned.
	Assigned

	// PickedUp indicates the package has been collected from the pickup
	// address.
	PickedUp

	// InTransit indicates the package is on the way.
	InTransit

	// OutForDelivery indicates the package is near its destination.
	OutForDelivery

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Failed indicates the delivery could not be completed. Terminal.
	Failed

	// Cancelled indicates the delivery was cancelled by the customer or an
	// admin. Terminal.
	Cancelled
)

// statusStrings maps statuses to their wire representation. The snake_case
// names are the persisted and client-visible values.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Assigned:       "assigned",
		PickedUp:       "picked_up",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Failed:         "failed",
		Cancelled:      "cancelled",
	}
}

// transitions is the complete directed transition table. Any pair not listed
// here is denied, including self-transitions. Terminal statuses map to empty
// rows so membership checks stay total.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Assigned, Cancelled},
		Assigned:       {PickedUp, Cancelled},
		PickedUp:       {InTransit, Failed},
		InTransit:      {OutForDelivery, Failed},
		OutForDelivery: {Delivered, Failed},
		Delivered:      {},
		Failed:         {},
		Cancelled:      {},
	}
}

// ParseStatus converts a wire value such as "picked_up" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is a member of the valid status set.
// Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid
// values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed || s == Cancelled
}

// CanTransitionTo reports whether the transition table permits moving from s
// to target. The check is pure and total: it returns false for any pair not
// in the table, never an error or panic, and s == target is always false.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is legal, or an
// InvalidTransitionError naming both statuses if it is not.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
