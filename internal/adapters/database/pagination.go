package database

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// sortDirection maps the repository sort direction onto Firestore's.
// Descending by default; timestamps are effectively unique so no
// secondary tiebreaker is applied.
func sortDirection(dir repositories.SortDirection) firestore.Direction {
	if dir == repositories.SortAsc {
		return firestore.Asc
	}
	return firestore.Desc
}

// resolveCursor loads the cursor document and verifies it belongs to the
// caller's result set. An unknown or foreign cursor is a validation error,
// not an internal one: the caller sent a continuation token that does not
// resolve in its own listing. A cursor document the caller has since
// soft-deleted is still accepted: it no longer appears in listings, but
// its position anchors the walk, so an in-progress pagination survives
// deleting the record it stopped at.
func resolveCursor(ctx context.Context, col *firestore.CollectionRef, cursor, ownerID string) (*firestore.DocumentSnapshot, error) {
	snap, err := col.Doc(cursor).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NewValidationError("Invalid cursor")
		}
		return nil, apperrors.NewInternalError("failed to resolve cursor", err)
	}

	if owner, _ := snap.DataAt("ownerUserId"); owner != ownerID {
		return nil, apperrors.NewValidationError("Invalid cursor")
	}

	return snap, nil
}

// clampPage trims an over-fetched window (limit+1 documents) down to the
// requested page and derives the continuation metadata.
func clampPage[T any](items []T, limit int, idOf func(T) string) *repositories.Page[T] {
	page := &repositories.Page[T]{Items: items}
	if limit > 0 && len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		page.NextCursor = idOf(page.Items[limit-1])
	}
	return page
}
