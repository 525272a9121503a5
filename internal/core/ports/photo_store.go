package ports

import (
	"context"
	"io"
	"time"
)

// PhotoStore is the outbound contract to object storage for package and
// consolidation photos.
type PhotoStore interface {
	// Put uploads a photo and returns its object key.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)

	// PresignedURL returns a time-limited download URL for a stored photo.
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
