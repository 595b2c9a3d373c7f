// Package rediscache backs the public tracking cache with Redis. Reads
// degrade to misses on any Redis failure so tracking keeps working when the
// cache is down.
package rediscache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tracking:"

// TrackingCache implements ports.TrackingCache over go-redis.
type TrackingCache struct {
	client *redis.Client
	logger *slog.Logger
}

// New creates a cache client for the given address. Password may be empty.
func New(addr, password string, logger *slog.Logger) *TrackingCache {
	return &TrackingCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		logger: logger,
	}
}

// Get returns the cached payload for a tracking code. Errors count as
// misses and are logged, never returned.
func (c *TrackingCache) Get(ctx context.Context, code string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+code).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("tracking cache read failed", "trackingCode", code, "error", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores a payload with the given TTL.
func (c *TrackingCache) Set(ctx context.Context, code string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, keyPrefix+code, payload, ttl).Err()
}

// Invalidate drops the cached payload for a code.
func (c *TrackingCache) Invalidate(ctx context.Context, code string) error {
	return c.client.Del(ctx, keyPrefix+code).Err()
}

// Close releases the underlying connection pool.
func (c *TrackingCache) Close() error {
	return c.client.Close()
}
