package database

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	fsclient "github.com/medvoice/scribe-backend/internal/infrastructure/clients/firestore"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

// maxBatchSize is Firestore's write batch limit. Larger logical batches
// are chunked into multiple commits, each awaited before the next.
const maxBatchSize = 500

// RetentionAdapter implements the RetentionRepository interface on
// Firestore. It is collection-agnostic: any collection with a deletedAt
// field can be swept through it.
type RetentionAdapter struct {
	client *fsclient.Client
}

// NewRetentionAdapter creates a new retention adapter
func NewRetentionAdapter(client *fsclient.Client) repositories.RetentionRepository {
	return &RetentionAdapter{client: client}
}

// QueryExpired returns up to pageSize soft-deleted records at or past the
// cutoff, oldest deletions first. Records with a null deletedAt never
// match the range filter.
func (a *RetentionAdapter) QueryExpired(ctx context.Context, collection string, cutoff time.Time, pageSize int) ([]repositories.ExpiredRecord, error) {
	docs, err := a.client.Client().Collection(collection).
		Where("deletedAt", "<=", cutoff).
		OrderBy("deletedAt", firestore.Asc).
		Limit(pageSize).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query expired records", err)
	}

	records := make([]repositories.ExpiredRecord, 0, len(docs))
	for _, doc := range docs {
		record := repositories.ExpiredRecord{ID: doc.Ref.ID}
		if path, err := doc.DataAt("storagePath"); err == nil {
			if s, ok := path.(string); ok {
				record.StoragePath = s
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// BatchDelete removes the given documents in chunked atomic batches.
// Each chunk is committed before the next is issued; a failed chunk
// leaves its records queryable for the next purge run.
func (a *RetentionAdapter) BatchDelete(ctx context.Context, collection string, ids []string) error {
	col := a.client.Client().Collection(collection)

	for _, chunk := range chunkIDs(ids, maxBatchSize) {
		batch := a.client.Client().Batch()
		for _, id := range chunk {
			batch.Delete(col.Doc(id))
		}
		if _, err := batch.Commit(ctx); err != nil {
			return apperrors.NewInternalError("failed to commit batch delete", err)
		}
	}

	return nil
}

// chunkIDs splits ids into slices of at most size elements.
func chunkIDs(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
