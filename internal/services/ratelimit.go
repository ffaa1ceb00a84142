package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cv-parser/internal/cache"
)

// RateLimiter bounds admitted requests per client to a maximum within a
// trailing window, recomputed on every check (sliding window with lazy
// expiry). The read-filter-write sequence is not atomic against the shared
// cache, so concurrent requests from one client can under-count; this is a
// best-effort abuse mitigation, not hard quota enforcement.
type RateLimiter interface {
	// Admit reports whether the client may proceed. A throttled request is
	// not recorded against the window.
	Admit(ctx context.Context, clientID string) (bool, error)
}

type slidingWindowLimiter struct {
	cache       cache.Cache
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

func NewRateLimiter(c cache.Cache, maxRequests int, window time.Duration) RateLimiter {
	if maxRequests <= 0 {
		maxRequests = 10
	}
	if window <= 0 {
		window = time.Hour
	}
	return &slidingWindowLimiter{
		cache:       c,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Admit implements RateLimiter.
func (l *slidingWindowLimiter) Admit(ctx context.Context, clientID string) (bool, error) {
	key := "rate_limit:" + clientID

	var timestamps []float64
	data, found, err := l.cache.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read rate window: %w", err)
	}
	if found {
		if err := json.Unmarshal(data, &timestamps); err != nil {
			// A corrupt window is discarded rather than locking the client out.
			timestamps = nil
		}
	}

	now := float64(l.now().UnixNano()) / float64(time.Second)
	windowStart := now - l.window.Seconds()

	updated := make([]float64, 0, len(timestamps)+1)
	for _, ts := range timestamps {
		if ts >= windowStart {
			updated = append(updated, ts)
		}
	}

	if len(updated) >= l.maxRequests {
		return false, nil
	}

	updated = append(updated, now)
	encoded, err := json.Marshal(updated)
	if err != nil {
		return false, fmt.Errorf("failed to encode rate window: %w", err)
	}
	if err := l.cache.Set(ctx, key, encoded, l.window); err != nil {
		return false, fmt.Errorf("failed to write rate window: %w", err)
	}

	return true, nil
}
