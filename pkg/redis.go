package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 5 * time.Second

// Cache is a JSON value cache over Redis. A Cache with a nil client misses on every read
// and drops every write.
type Cache struct {
	client *redis.Client
	prefix string
}

func NewCache(client *redis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Enabled reports whether a Redis client backs the cache
func (slf *Cache) Enabled() bool {
	return slf != nil && slf.client != nil
}

// Set stores a value with a TTL. The value is JSON-serialized.
func (slf *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !slf.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return slf.client.Set(ctx, slf.prefix+key, data, ttl).Err()
}

// Get retrieves a value and JSON-deserializes it into dest.
// Returns redis.Nil if the key does not exist.
func (slf *Cache) Get(ctx context.Context, key string, dest any) error {
	if !slf.Enabled() {
		return redis.Nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	data, err := slf.client.Get(ctx, slf.prefix+key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Delete removes a key.
func (slf *Cache) Delete(ctx context.Context, key string) error {
	if !slf.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	return slf.client.Del(ctx, slf.prefix+key).Err()
}

// IsRedisNil returns true if the error is a redis key-not-found error.
func IsRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
