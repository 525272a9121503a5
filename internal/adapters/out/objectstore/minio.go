// Package objectstore provides a MinIO-backed PhotoStore for warehouse
// photos. Photos are stored in one bucket; download access goes through
// time-limited presigned URLs.
package objectstore

import (
	"context"
	"io"
	"time"

	"forwarding/internal/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioPhotoStore implements PhotoStore using a MinIO (or S3-compatible)
// object store.
type MinioPhotoStore struct {
	client *minio.Client
	bucket string
}

// NewMinioPhotoStore creates a photo store bound to one bucket.
func NewMinioPhotoStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioPhotoStore, error) {
	if endpoint == "" {
		return nil, errs.NewValueIsRequiredError("endpoint")
	}
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errs.NewExternalServiceErrorWithCause("minio", err)
	}

	return &MinioPhotoStore{client: client, bucket: bucket}, nil
}

// EnsureBucket creates the photo bucket if it does not exist yet.
// Called once at startup.
func (s *MinioPhotoStore) EnsureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errs.NewExternalServiceErrorWithCause("minio", err)
	}
	if found {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return errs.NewExternalServiceErrorWithCause("minio", err)
	}
	return nil
}

// Put uploads a photo and returns its object key.
func (s *MinioPhotoStore) Put(
	ctx context.Context,
	key string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errs.NewExternalServiceErrorWithCause("minio", err)
	}

	return key, nil
}

// PresignedURL returns a time-limited download URL for a stored photo.
func (s *MinioPhotoStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	url, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", errs.NewExternalServiceErrorWithCause("minio", err)
	}

	return url.String(), nil
}
