package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisTTL keeps a day record around a little past its day.
const DefaultRedisTTL = 48 * time.Hour

// redisKV stores blobs as plain Redis strings under a prefix.
type redisKV struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis returns a KV over client. Keys are namespaced with prefix; a
// non-positive ttl stores keys without expiry.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) KV {
	return &redisKV{client: client, prefix: prefix, ttl: ttl}
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *redisKV) Set(ctx context.Context, key string, blob []byte) error {
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, r.prefix+key, blob, ttl).Err()
}
