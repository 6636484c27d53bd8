package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_Get(t *testing.T) {
	store := newIPRateLimiter(1, 2)

	a := store.get("10.0.0.1")
	assert.Same(t, a, store.get("10.0.0.1"))
	assert.NotSame(t, a, store.get("10.0.0.2"))

	assert.True(t, a.Allow())
	assert.True(t, a.Allow())
	assert.False(t, a.Allow())
}

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	store := newIPRateLimiter(1, 1)
	store.now = func() time.Time { return now }

	store.get("10.0.0.1")
	now = now.Add(5 * time.Minute)
	store.get("10.0.0.2")
	now = now.Add(6 * time.Minute)

	store.evictIdle(10 * time.Minute)

	_, stale := store.limiters.Load("10.0.0.1")
	_, fresh := store.limiters.Load("10.0.0.2")
	assert.False(t, stale)
	assert.True(t, fresh)
}

func TestIPRateLimiter_CleanupLoopStops(t *testing.T) {
	store := newIPRateLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.cleanupLoop(ctx, time.Millisecond, time.Minute)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
