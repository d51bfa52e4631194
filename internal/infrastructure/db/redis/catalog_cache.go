package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

const (
	cacheTTL   = 30 * time.Second
	versionKey = "catalog:ver"
)

// CatalogCache caches list/search results in Redis. Invalidation bumps a
// version counter rather than scanning for keys; entries written under an
// old version simply stop being addressed and fall out via TTL.
// Key format: catalog:<version>:<query key>
type CatalogCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

// Get returns the cached result for key and whether it was present. Any
// Redis or decode error counts as a miss.
func (c *CatalogCache) Get(ctx context.Context, key string) ([]domain.Sweet, bool) {
	raw, err := c.client.Get(ctx, c.key(ctx, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var sweets []domain.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
	return sweets, true
}

// Set stores sweets under key with a short TTL. Errors are logged, never
// surfaced: the cache is best effort.
func (c *CatalogCache) Set(ctx context.Context, key string, sweets []domain.Sweet) {
	raw, err := json.Marshal(sweets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(ctx, key), raw, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}

// Invalidate bumps the catalog version, orphaning every cached entry.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func (c *CatalogCache) key(ctx context.Context, key string) string {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		ver = -1 // unaddressable version: behaves as a cold cache
	}
	return fmt.Sprintf("catalog:%d:%s", ver, key)
}
