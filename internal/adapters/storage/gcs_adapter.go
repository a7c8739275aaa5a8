package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
)

// GCSAdapter implements the BlobStore interface on Google Cloud Storage.
type GCSAdapter struct {
	client *storage.Client
	bucket string
}

// NewGCSAdapter creates a new GCS blob store adapter
func NewGCSAdapter(ctx context.Context, bucket string) (providers.BlobStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSAdapter{client: client, bucket: bucket}, nil
}

// SignedUploadURL issues a PUT-able URL for the given object path
func (a *GCSAdapter) SignedUploadURL(ctx context.Context, objectPath, contentType string, expiry time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(expiry),
		ContentType: contentType,
	}

	url, err := a.client.Bucket(a.bucket).SignedURL(objectPath, opts)
	if err != nil {
		return "", fmt.Errorf("failed to sign upload url for %s: %w", objectPath, err)
	}
	return url, nil
}

// Delete removes the blob at objectPath. A missing object is treated as
// already deleted, which keeps purge retries idempotent.
func (a *GCSAdapter) Delete(ctx context.Context, objectPath string) error {
	err := a.client.Bucket(a.bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}
	return nil
}
