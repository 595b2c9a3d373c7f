package rediscache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*TrackingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mr.Addr(), "", logger), mr
}

func TestTrackingCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "TRKABC123", []byte(`{"status":"pending"}`), time.Minute))

	payload, ok := cache.Get(ctx, "TRKABC123")
	require.True(t, ok)
	assert.JSONEq(t, `{"status":"pending"}`, string(payload))
}

func TestTrackingCache_Miss(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	_, ok := cache.Get(ctx, "TRKMISSING")
	assert.False(t, ok)
}

func TestTrackingCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "TRKABC123", []byte("payload"), time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "TRKABC123"))

	_, ok := cache.Get(ctx, "TRKABC123")
	assert.False(t, ok)

	// Invalidating an absent key is not an error.
	assert.NoError(t, cache.Invalidate(ctx, "TRKABC123"))
}

func TestTrackingCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "TRKABC123", []byte("payload"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "TRKABC123")
	assert.False(t, ok)
}

func TestTrackingCache_ServerDownDegradesToMiss(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	mr.Close()

	_, ok := cache.Get(ctx, "TRKABC123")
	assert.False(t, ok)

	assert.Error(t, cache.Set(ctx, "TRKABC123", []byte("payload"), time.Minute))
}
