package cache

import (
	"context"
	"time"
)

// Cache is the key-value collaborator the rate limiter counts against. A
// single instance backs it with an in-process store; multi-instance
// deployments point it at Redis. Values expire after their TTL.
type Cache interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
