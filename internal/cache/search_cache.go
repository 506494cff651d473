package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const searchKeyPattern = "rooms:search:*"

// SearchCache keeps serialized room search results in Redis. All methods are
// best-effort; a cache failure never fails the request.
type SearchCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSearchCache wraps the Redis client. A nil client disables caching.
func NewSearchCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *SearchCache {
	return &SearchCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the cached payload for key, or ok=false on miss or error.
func (c *SearchCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("search cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores the payload under key with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, key string, data []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("search cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached search result. Called after any room mutation.
func (c *SearchCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, searchKeyPattern, 100).Result()
		if err != nil {
			c.logger.Warn("search cache invalidation failed", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("search cache invalidation failed", zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
