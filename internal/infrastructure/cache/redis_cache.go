// Package cache adapts Redis into the record cache port. The store never
// computes values itself; callers check it first and write computed results
// back (cache-aside).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"NewsEnricher/internal/config"
	"NewsEnricher/internal/domain"
	"NewsEnricher/internal/ports"
)

// RedisCache stores enriched records as JSON strings with per-key expiry.
type RedisCache struct {
	rdb *redis.Client
}

var _ ports.RecordCache = (*RedisCache)(nil)

// NewRedisCache creates a client and verifies the connection with a PING.
// A failed ping is reported but the client is still usable: a cache outage
// must degrade to "always recompute", not fail the process.
func NewRedisCache(cfg config.CacheConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return &RedisCache{rdb: rdb}, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

// Get fetches and deserializes the record stored under id. An absent key is
// domain.ErrCacheMiss; any other error is a transport failure.
func (c *RedisCache) Get(ctx context.Context, id string) (*domain.EnrichedRecord, error) {
	raw, err := c.rdb.Get(ctx, id).Result()
	if isNilError(err) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var record domain.EnrichedRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// A corrupt entry is indistinguishable from an absent one for
		// the caller; it will be recomputed and overwritten.
		return nil, fmt.Errorf("decode cached record: %w", err)
	}

	return &record, nil
}

// Put serializes the record and writes it with the given TTL.
func (c *RedisCache) Put(ctx context.Context, id string, record *domain.EnrichedRecord, ttl time.Duration) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := c.rdb.Set(ctx, id, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// isNilError reports whether err is a Redis nil (key-not-found) reply, even
// when wrapped.
func isNilError(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Close releases the underlying connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
