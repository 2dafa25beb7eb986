package artwork

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignExpiry = 15 * time.Minute

// Store hands out short-lived download links for objects kept in the
// artwork bucket.
type Store interface {
	PresignDownload(ctx context.Context, objectKey string) (string, error)
}

// MinioStore implements Store on top of a MinIO (or any S3 compatible)
// bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// Options configures the object storage connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStore connects to the object storage endpoint.
func NewMinioStore(opts Options) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}
	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// PresignDownload returns a time-limited URL for a direct GET of the
// object. The caller never proxies the bytes.
func (s *MinioStore) PresignDownload(ctx context.Context, objectKey string) (string, error) {
	signed, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectKey, err)
	}
	return signed.String(), nil
}
