package storage

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written to a shared Redis.
const KeyPrefix = "poetry:"

// RedisKV stores values as plain Redis strings without expiry.
type RedisKV struct {
	client *goredis.Client
}

func NewRedisKV(client *goredis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func redisKey(key string) string {
	return KeyPrefix + key
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, redisKey(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := r.client.Set(ctx, redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisKV) Close() error    { return r.client.Close() }
func (r *RedisKV) Backend() string { return "redis" }
