package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecordsKey is the well-known key under which the full record dataset
// snapshot is cached. Writers invalidate it; the full-dataset reader
// repopulates it on a miss.
const RecordsKey = "registry:records:all"

// Cache defines the interface for the snapshot cache collaborator.
type Cache interface {
	// Get returns the value for key. The second return is false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key with the given TTL (zero means no expiry).
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// redisCache is the Redis-backed Cache implementation.
type redisCache struct {
	client *redis.Client
}

// New creates a Redis-backed cache from the configuration.
// Returns nil if the URL is empty (cache not configured).
func New(cfg Config) (Cache, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse cache URL: %w", err)
	}

	if cfg.DialTimeoutSeconds > 0 {
		opts.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache ping failed: %w", err)
	}

	return &redisCache{client: client}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
