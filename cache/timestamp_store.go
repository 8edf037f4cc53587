package cache

import (
	"context"
	"time"

	"scpod/logger"

	"github.com/redis/go-redis/v9"
)

// TimestampStore persists first-seen timestamps by cache key. Both
// operations fail soft: backend trouble surfaces as a miss or a failed
// write, never as an error. Callers must not rely on Set overwriting an
// existing key.
type TimestampStore interface {
	// Get returns the stored instant for key, or ok=false when the key is
	// absent or the backend is unavailable.
	Get(ctx context.Context, key string) (time.Time, bool)
	// Set records value under key unless a value is already present.
	// Returns whether the write is believed to have landed.
	Set(ctx context.Context, key string, value time.Time) bool
}

// RedisTimestampStore stores timestamps as RFC3339Nano strings in Redis.
// Writes use SETNX so the first recorded value for a key is never
// overwritten.
type RedisTimestampStore struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisTimestampStore wraps client with a per-operation timeout.
func NewRedisTimestampStore(client *redis.Client, timeout time.Duration) *RedisTimestampStore {
	return &RedisTimestampStore{client: client, timeout: timeout}
}

func (s *RedisTimestampStore) Get(ctx context.Context, key string) (time.Time, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return time.Time{}, false
	}
	if err != nil {
		logger.Warn("timestamp cache read failed, treating as miss",
			logger.String("key", key),
			logger.ErrorField(err),
		)
		return time.Time{}, false
	}

	ts, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		logger.Warn("timestamp cache holds unparseable value, treating as miss",
			logger.String("key", key),
			logger.String("value", val),
			logger.ErrorField(err),
		)
		return time.Time{}, false
	}
	return ts, true
}

func (s *RedisTimestampStore) Set(ctx context.Context, key string, value time.Time) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ok, err := s.client.SetNX(ctx, key, value.UTC().Format(time.RFC3339Nano), 0).Result()
	if err != nil {
		logger.Warn("timestamp cache write failed",
			logger.String("key", key),
			logger.ErrorField(err),
		)
		return false
	}
	return ok
}

// NoopTimestampStore is the no-backend mode store: every Get misses and
// every Set fails, with no network calls attempted.
type NoopTimestampStore struct{}

func NewNoopTimestampStore() *NoopTimestampStore {
	return &NoopTimestampStore{}
}

func (*NoopTimestampStore) Get(ctx context.Context, key string) (time.Time, bool) {
	return time.Time{}, false
}

func (*NoopTimestampStore) Set(ctx context.Context, key string, value time.Time) bool {
	return false
}
