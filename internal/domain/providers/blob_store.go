package providers

import (
	"context"
	"time"
)

// BlobStore manages the audio artifacts referenced by visit storagePath
// fields.
type BlobStore interface {
	// SignedUploadURL issues a client-uploadable URL for objectPath.
	SignedUploadURL(ctx context.Context, objectPath, contentType string, expiry time.Duration) (string, error)

	// Delete removes the blob. Deleting a missing object is not an error.
	Delete(ctx context.Context, objectPath string) error
}
