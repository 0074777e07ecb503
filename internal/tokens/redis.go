package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists bundles in Redis with a fixed 7-day TTL per entry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a durable store from a Redis connection URL
// (e.g. "redis://localhost:6379/0").
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts)}, nil
}

// NewRedisStoreWithClient creates a durable store around an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies connectivity to the Redis server.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get retrieves and decodes the bundle for a user.
func (s *RedisStore) Get(ctx context.Context, userID string) (*Bundle, error) {
	data, err := s.client.Get(ctx, KeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("corrupt token bundle for key %s%s: %w", KeyPrefix, userID, err)
	}
	return &bundle, nil
}

// Put encodes and stores the bundle with the fixed entry TTL.
func (s *RedisStore) Put(ctx context.Context, userID string, bundle *Bundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("encode token bundle: %w", err)
	}
	if err := s.client.Set(ctx, KeyPrefix+userID, data, EntryTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the bundle for a user.
func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, KeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
