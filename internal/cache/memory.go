package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache returns an in-process Cache suitable for single-instance
// deployments and tests.
func NewMemoryCache() Cache {
	return &memoryCache{
		store: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, found := m.store.Get(key)
	if !found {
		return nil, false, nil
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, false, nil
	}
	return data, true, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}
