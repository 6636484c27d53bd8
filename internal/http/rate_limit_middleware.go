package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimiterCleanupInterval = 5 * time.Minute
	rateLimiterIdleTimeout     = 10 * time.Minute
)

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	rps      rate.Limit
	burst    int
	now      func() time.Time
}

type limiterEntry struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	seen    time.Time
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{rps: rate.Limit(rps), burst: burst, now: time.Now}
}

// RateLimitMiddleware enforces a per-IP token bucket on the routes it guards.
// Idle buckets are evicted periodically until ctx is done. Rejected requests
// get 429 with a Retry-After header.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newIPRateLimiter(rps, burst)
	go store.cleanupLoop(ctx, rateLimiterCleanupInterval, rateLimiterIdleTimeout)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := store.get(ip)

		reservation := limiter.Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			retryAfter := int(math.Ceil(delay.Seconds()))

			logger.Debug("rate limit exceeded",
				slog.String("client_ip", ip),
				slog.Int("retry_after", retryAfter),
			)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}

func (s *ipRateLimiter) get(ip string) *rate.Limiter {
	now := s.now()
	if v, ok := s.limiters.Load(ip); ok {
		entry := v.(*limiterEntry)
		entry.mu.Lock()
		entry.seen = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &limiterEntry{limiter: rate.NewLimiter(s.rps, s.burst), seen: now}
	actual, _ := s.limiters.LoadOrStore(ip, entry)
	return actual.(*limiterEntry).limiter
}

func (s *ipRateLimiter) cleanupLoop(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(idle)
		}
	}
}

func (s *ipRateLimiter) evictIdle(idle time.Duration) {
	cutoff := s.now().Add(-idle)
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		stale := entry.seen.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}
