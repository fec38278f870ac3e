package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/config"
	"github.com/jellydator/ttlcache/v3"
)

// memoryCache lives as long as the view that owns it. Values are stored as
// JSON so a caller can never mutate a cached result through a shared pointer.
// Expiry is fixed at Set time; reads do not extend it.
type memoryCache struct {
	items *ttlcache.Cache[string, []byte]
}

func NewMemoryCache(cfg *config.CacheConfig) Cache {
	return newMemoryCache(cfg)
}

func newMemoryCache(cfg *config.CacheConfig) *memoryCache {
	return &memoryCache{
		items: ttlcache.New[string, []byte](
			ttlcache.WithTTL[string, []byte](cfg.DefaultTTL),
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

func (m *memoryCache) Get(_ context.Context, key string, value any) (bool, error) {

	item := m.items.Get(key)
	if item == nil {
		return false, nil
	}

	if err := json.Unmarshal(item.Value(), value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	return true, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}

	m.items.Set(key, data, ttl)

	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *memoryCache) Close() error {
	m.items.DeleteAll()
	return nil
}

// New picks the backend named in cfg.
func New(ctx context.Context, cfg *config.Config) (Cache, error) {

	switch cfg.Cache.Backend {
	case "", "memory":
		return NewMemoryCache(&cfg.Cache), nil
	case "redis":
		client, err := NewRedisClient(ctx, &cfg.RedisConnect)
		if err != nil {
			return nil, err
		}
		return NewRedisCache(client, &cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
