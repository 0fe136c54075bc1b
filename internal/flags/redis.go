package flags

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists flags in Redis so they survive restarts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return val == "1", nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value bool) error {
	val := "0"
	if value {
		val = "1"
	}
	return s.client.Set(ctx, key, val, 0).Err()
}
