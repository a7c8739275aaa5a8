package repositories

import (
	"context"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
)

// VisitSearchHit is one full-text search result over completed visits.
type VisitSearchHit struct {
	VisitID string  `json:"visit_id"`
	Summary string  `json:"summary"`
	Snippet string  `json:"snippet,omitempty"`
	Score   float64 `json:"score"`
}

// VisitSearchRepository indexes completed visits for owner-scoped
// full-text search. Indexing is best-effort; the lifecycle never blocks
// on the search engine.
type VisitSearchRepository interface {
	EnsureCollection(ctx context.Context) error
	Index(ctx context.Context, visit *entities.Visit) error
	Remove(ctx context.Context, visitID string) error
	Search(ctx context.Context, ownerID, query string, limit int) ([]*VisitSearchHit, error)
}
