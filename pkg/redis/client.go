package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache key templates
const (
	// KeyMappedActivities caches the normalized activity list per date window.
	KeyMappedActivities = "activities:%s:%s" // activities:{start}:{end}
)

// TTL constants
const (
	// TTLMappedActivities is short: rides rarely change mid-tour but a fresh
	// upload should appear within minutes.
	TTLMappedActivities = 5 * time.Minute
)

// Client wraps go-redis with environment-prefixed keys and structured logging.
type Client struct {
	rdb    *redis.Client
	prefix string
	log    *zap.Logger
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(redisURL, environment string, log *zap.Logger) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = environment
	}

	return &Client{rdb: rdb, prefix: prefix, log: log}, nil
}

// BuildKey prepends the environment prefix to a key.
func (c *Client) BuildKey(key string) string {
	return c.prefix + ":" + key
}

// Get retrieves a value. A missing key returns redis.Nil as the error.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, c.BuildKey(key)).Result()
	if err != nil && err != redis.Nil {
		c.log.Warn("redis_get", zap.String("key", key), zap.Error(err))
	}
	return val, err
}

// Set stores a value with a TTL.
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	err := c.rdb.Set(ctx, c.BuildKey(key), value, ttl).Err()
	if err != nil {
		c.log.Warn("redis_set", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete removes keys.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.BuildKey(k)
	}
	return c.rdb.Del(ctx, prefixed...).Err()
}

// IsNil reports whether err means "key not found".
func IsNil(err error) bool {
	return err == redis.Nil
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}
