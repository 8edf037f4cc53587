package cache

import (
	"context"
	"fmt"
	"time"

	"scpod/config"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 2 * time.Second

// NewRedisClient connects to the configured cache backend and verifies the
// connection with a ping.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.RedisToken != "" {
		opts.Password = cfg.RedisToken
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
