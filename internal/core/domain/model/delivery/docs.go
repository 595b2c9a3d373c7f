// Package delivery contains the delivery aggregate and its supporting value
// objects. The aggregate is the sole authorized mutator of a delivery's
// status, timeline, and derived timestamps.
//
// The aggregate maintains these invariants:
//   - Status is always a member of the fixed status set and only changes
//     through the validated transition table.
//   - The timeline is an append-only ledger: the first entry is always
//     pending with the creation note, the last entry's status always equals
//     the current status, and entries are never edited or reordered.
//   - actualPickupTime and actualDeliveryTime are each set at most once, the
//     first time the corresponding status is reached.
//   - The tracking code and price are assigned at creation and never change.
package delivery
