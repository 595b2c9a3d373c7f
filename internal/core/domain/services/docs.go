// Package services provides domain services that implement business
// operations spanning more than one value object or aggregate.
//
// The package includes:
//   - Pricer: a deterministic quote calculator applied once at delivery
//     creation
package services
