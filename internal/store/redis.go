package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisPrefix namespaces budgetd keys so Clear never touches other
// tenants of a shared instance.
const redisPrefix = "budgetd:"

// Redis is an optional Store backend for setups sharing one cache
// across devices. TTLs map directly onto Redis key expiry, so expired
// entries are misses without any lazy-delete bookkeeping.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

// OpenRedis connects to a Redis instance and verifies it is reachable.
func OpenRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &Redis{client: client, ctx: ctx}, nil
}

// Get returns the payload for key if present and unexpired.
func (r *Redis) Get(key string) ([]byte, bool) {
	val, err := r.client.Get(r.ctx, redisPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a payload with a fresh TTL.
func (r *Redis) Set(key string, payload []byte, ttl time.Duration) error {
	return r.client.Set(r.ctx, redisPrefix+key, payload, ttl).Err()
}

// Invalidate removes one entry.
func (r *Redis) Invalidate(key string) error {
	return r.client.Del(r.ctx, redisPrefix+key).Err()
}

// Clear removes every budgetd-prefixed entry.
func (r *Redis) Clear() error {
	iter := r.client.Scan(r.ctx, 0, redisPrefix+"*", 0).Iterator()
	for iter.Next(r.ctx) {
		if err := r.client.Del(r.ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the client connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
