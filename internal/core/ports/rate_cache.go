package ports

import (
	"context"
	"time"
)

// RateCache caches carrier rate quotes keyed by the shape of the rate
// request. A miss returns ok=false with a nil error.
type RateCache interface {
	Get(ctx context.Context, key string) ([]Rate, bool, error)
	Set(ctx context.Context, key string, rates []Rate, ttl time.Duration) error
}
