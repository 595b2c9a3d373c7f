// Package errs provides standardized error types for the delivery application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrInvalidTransition) for errors.Is checks
//   - a struct type carrying the error details
//   - constructor functions, with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// The delivery-specific kinds map one-to-one onto the client-visible error
// taxonomy: validation failures, denied status transitions, assignment and
// deletion guards, tracking-code collisions, missing objects, and lost
// compare-and-set updates. Every error carries a stable machine-checkable kind
// plus a human-readable message; none are fatal to the process.
package errs
