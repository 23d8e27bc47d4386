package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "wcaPersons"

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client
}

// RedisStore keeps the list as a JSON string value under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store and checks connectivity.
func NewRedisStore(ctx context.Context, cfg *RedisConfig, opts ...RedisOption) (*RedisStore, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to connect to Redis: %w", ErrStore, err)
	}

	s := &RedisStore{client: cfg.RedisClient, key: defaultRedisKey}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Key returns the key holding the list.
func (s *RedisStore) Key() string { return s.key }

func (s *RedisStore) Load(ctx context.Context) ([]string, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: get %s: %w", ErrStore, s.key, err)
	}
	return decode(raw)
}

func (s *RedisStore) Save(ctx context.Context, ids []string) error {
	b, err := encode(ids)
	if err != nil {
		return err
	}
	// No expiration: the list lives until cleared
	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrStore, s.key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %w", ErrStore, s.key, err)
	}
	return nil
}
