// Package cache is an optional read-through cache over product lookups,
// backed by go-redis. It degrades to a permanent cache miss whenever Redis
// is unreachable or disabled in config rather than surfacing an error —
// the product/inventory repositories underneath always remain the source
// of truth, so a cache outage should never fail a request.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache wraps a redis client, or none at all when disabled.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs a Cache. A nil client is valid and makes every Get report
// a miss and every Set a no-op — the caller doesn't need to branch on
// whether caching is enabled.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get looks up key and decodes it into dest. Reports false on any miss,
// decode error, or when caching is disabled — callers always fall back to
// the repository on a false return.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key with the cache's configured TTL. Errors are
// swallowed: a failed cache write must never fail the caller's request.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, c.ttl)
}

// Invalidate removes key.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	c.client.Del(ctx, key)
}

// ProductKey builds the cache key for a per-product lookup from the
// product identifier the caller keys on (internal/httpapi passes the
// product id).
func ProductKey(sku string) string {
	return "product:" + sku
}
