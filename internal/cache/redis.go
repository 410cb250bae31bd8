package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const pageKeyPrefix = "page:"

// Connect parses a redis:// URL and verifies the server answers.
func Connect(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connected", "addr", opts.Addr)
	return client, nil
}

type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPageCache(client *redis.Client, ttl time.Duration) *RedisPageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &RedisPageCache{client: client, ttl: ttl}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, pageKeyPrefix+key, value, c.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

func (c *RedisPageCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = pageKeyPrefix + k
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		slog.Warn("page cache invalidate error", "keys", keys, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "keys", keys)
}

// InvalidatePrefix walks the matching keys with SCAN and deletes them in
// batches.
func (c *RedisPageCache) InvalidatePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, pageKeyPrefix+prefix+"*", 100).Iterator()

	var batch []string
	flush := func() bool {
		if len(batch) == 0 {
			return true
		}
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			slog.Warn("page cache invalidate error", "prefix", prefix, "error", err)
			return false
		}
		batch = batch[:0]
		return true
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 && !flush() {
			return
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("page cache scan error", "prefix", prefix, "error", err)
		return
	}
	if flush() {
		slog.Debug("page cache invalidated", "prefix", prefix)
	}
}
