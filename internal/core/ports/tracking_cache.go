package ports

import (
	"context"
	"time"
)

// TrackingCache caches rendered public tracking responses keyed by tracking
// code. Entries are invalidated on every status change so the public page
// never serves a stale status for longer than the TTL.
type TrackingCache interface {
	// Get returns the cached payload for a code, or ok=false on a miss.
	// Cache errors are treated as misses.
	Get(ctx context.Context, code string) (payload []byte, ok bool)

	// Set stores a payload under a code with the given TTL.
	Set(ctx context.Context, code string, payload []byte, ttl time.Duration) error

	// Invalidate drops the entry for a code.
	Invalidate(ctx context.Context, code string) error
}
