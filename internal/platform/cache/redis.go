package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a redis server. Expiry is delegated to redis
// TTLs, so there is no cleanup goroutine.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the redis server at redisURL (redis://host:port/db)
// and verifies connectivity with a ping.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	r.client.Set(ctx, key, value, ttl)
}

func (r *Redis) Delete(ctx context.Context, key string) {
	r.client.Del(ctx, key)
}

// DeletePrefix scans for keys matching prefix* and removes them in batches.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			r.client.Del(ctx, keys...)
			keys = keys[:0]
		}
	}
	if len(keys) > 0 {
		r.client.Del(ctx, keys...)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
