// Package ratecache provides a Redis-backed cache for carrier rate quotes.
// Quotes are keyed by the shape of the rate request and expire after a
// configured TTL, keeping repeat quoting off the carrier API.
package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rates:"

// RedisRateCache implements RateCache using go-redis.
type RedisRateCache struct {
	client *redis.Client
}

// NewRedisRateCache creates a rate cache on the given Redis connection.
func NewRedisRateCache(client *redis.Client) *RedisRateCache {
	return &RedisRateCache{client: client}
}

// Get returns the cached rates for the key, or ok=false on a miss.
func (c *RedisRateCache) Get(ctx context.Context, key string) ([]ports.Rate, bool, error) {
	if key == "" {
		return nil, false, errs.NewValueIsRequiredError("key")
	}

	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errs.NewExternalServiceErrorWithCause("redis", err)
	}

	var rates []ports.Rate
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, false, errs.NewExternalServiceErrorWithCause("redis", err)
	}

	return rates, true, nil
}

// Set stores the rates under the key with the given TTL.
func (c *RedisRateCache) Set(ctx context.Context, key string, rates []ports.Rate, ttl time.Duration) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	raw, err := json.Marshal(rates)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return errs.NewExternalServiceErrorWithCause("redis", err)
	}

	return nil
}
