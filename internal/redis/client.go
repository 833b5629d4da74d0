package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const availabilityPrefix = "availability:"

type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, cacheTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cacheTTL}, nil
}

// GetAvailability loads a cached availability response into dest. The second
// return value reports a cache hit.
func (c *Client) GetAvailability(key string, dest interface{}) (bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, availabilityPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get availability cache: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal availability cache: %w", err)
	}
	return true, nil
}

func (c *Client) SetAvailability(key string, value interface{}) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal availability cache: %w", err)
	}
	return c.rdb.Set(ctx, availabilityPrefix+key, jsonData, c.ttl).Err()
}

// InvalidateAvailability drops every cached availability entry. Keys are
// walked with SCAN so a large cache does not block the server.
func (c *Client) InvalidateAvailability() error {
	ctx := context.Background()
	iter := c.rdb.Scan(ctx, 0, availabilityPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete availability cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan availability cache keys: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
