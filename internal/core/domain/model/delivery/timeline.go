package delivery

import (
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
)

// TimelineEntry is one immutable record of a status change: the status
// entered, when it happened, and an optional location and note.
type TimelineEntry struct {
	status    Status
	timestamp time.Time
	location  *kernel.GeoPoint
	note      string
}

// NewTimelineEntry creates an entry. Location and note may be absent.
func NewTimelineEntry(status Status, timestamp time.Time, location *kernel.GeoPoint, note string) TimelineEntry {
	return TimelineEntry{
		status:    status,
		timestamp: timestamp,
		location:  location,
		note:      note,
	}
}

// Status returns the status the delivery entered at this point.
func (e TimelineEntry) Status() Status {
	return e.status
}

// Timestamp returns when the change happened.
func (e TimelineEntry) Timestamp() time.Time {
	return e.timestamp
}

// Location returns where the change happened, or nil if not recorded.
func (e TimelineEntry) Location() *kernel.GeoPoint {
	return e.location
}

// Note returns the free-text note attached to the change, if any.
func (e TimelineEntry) Note() string {
	return e.note
}

// Timeline is the append-only ordered ledger of a delivery's status changes.
// Entries preserve insertion order and are never edited or removed after
// append.
type Timeline struct {
	entries []TimelineEntry
}

// RestoreTimeline rebuilds a timeline from persisted entries, preserving
// their order.
func RestoreTimeline(entries []TimelineEntry) Timeline {
	restored := make([]TimelineEntry, len(entries))
	copy(restored, entries)
	return Timeline{entries: restored}
}

// Append adds an entry at the end of the ledger.
func (t *Timeline) Append(entry TimelineEntry) {
	t.entries = append(t.entries, entry)
}

// First returns the oldest entry. The second return value is false for an
// empty timeline.
func (t Timeline) First() (TimelineEntry, bool) {
	if len(t.entries) == 0 {
		return TimelineEntry{}, false
	}
	return t.entries[0], true
}

// Last returns the newest entry. The second return value is false for an
// empty timeline.
func (t Timeline) Last() (TimelineEntry, bool) {
	if len(t.entries) == 0 {
		return TimelineEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Len returns the number of entries.
func (t Timeline) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the ledger; mutating the result does not affect
// the timeline.
func (t Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
