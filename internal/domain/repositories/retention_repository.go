package repositories

import (
	"context"
	"time"
)

// ExpiredRecord is a purge candidate: a soft-deleted document past the
// retention cutoff. StoragePath is populated for collections whose records
// reference an audio blob, so the purger can reclaim it.
type ExpiredRecord struct {
	ID          string
	StoragePath string
}

// RetentionRepository queries and deletes soft-deleted records. It is
// generic over collection name: any collection carrying a deletedAt field
// can be purged through it.
type RetentionRepository interface {
	// QueryExpired returns up to pageSize records with deletedAt <= cutoff,
	// ordered by deletedAt ascending.
	QueryExpired(ctx context.Context, collection string, cutoff time.Time, pageSize int) ([]ExpiredRecord, error)

	// BatchDelete removes the given documents. Batches larger than the
	// store's maximum are chunked internally, each chunk committed before
	// the next is issued.
	BatchDelete(ctx context.Context, collection string, ids []string) error
}
