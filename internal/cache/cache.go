package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

// ViewCache is a JSON-backed Redis cache for one view type.
// A nil *ViewCache is valid and never hits.
type ViewCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

// NewViewCache returns nil when client is nil
func NewViewCache[T any](client *redis.Client, prefix string, ttl time.Duration, log *logger.Logger) *ViewCache[T] {
	if client == nil {
		return nil
	}
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl, log: log}
}

func (c *ViewCache[T]) key(k string) string {
	return c.prefix + ":" + k
}

// Get retrieves and unmarshals a value; any miss or decode error returns false
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		metrics.RecordCacheLookup(c.prefix, false)
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		metrics.RecordCacheLookup(c.prefix, false)
		return nil, false
	}
	metrics.RecordCacheLookup(c.prefix, true)
	return &v, true
}

// Set stores value; write failures are logged and swallowed
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c == nil || value == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).With("key", key).Warn("View cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		c.log.WithError(err).With("key", key).Warn("View cache write failed")
	}
}

// Delete removes a key
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.log.WithError(err).With("key", key).Warn("View cache delete failed")
	}
}

// GetOrLoad returns the cached value or calls load and caches its result
func (c *ViewCache[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (*T, error)) (*T, error) {
	if v, ok := c.Get(ctx, key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(ctx, key, v)
	return v, nil
}
