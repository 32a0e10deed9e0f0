package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a CacheRepository backed by a Redis server, for deployments where
// several planner instances share one cache.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
}

// NewRedis connects to the Redis server at addr. Entries expire after ttl;
// zero means no expiry.
func NewRedis(addr string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ttl:    ttl,
		ctx:    context.Background(),
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}

// Ping verifies connectivity to the Redis server.
func (r *Redis) Ping() error {
	return r.client.Ping(r.ctx).Err()
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
