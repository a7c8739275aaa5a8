package repositories

import (
	"context"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
)

// VisitRepository defines the interface for visit persistence.
// Every mutation is an atomic single-document operation; the lifecycle
// services rely on that for their field-scoped idempotency checks.
type VisitRepository interface {
	Create(ctx context.Context, visit *entities.Visit) error
	GetByID(ctx context.Context, id string) (*entities.Visit, error)

	// FindByTranscriptionID resolves the visit whose current transcriptionId
	// matches. Returns a not-found error when nothing matches, which callers
	// treat as "this delivery has been superseded".
	FindByTranscriptionID(ctx context.Context, transcriptionID string) (*entities.Visit, error)

	// List returns active (not soft-deleted) visits owned by ownerID,
	// ordered by createdAt, paginated per opts.
	List(ctx context.Context, ownerID string, opts ListOptions) (*Page[*entities.Visit], error)

	// UpdateFields applies set and unset to a single document atomically.
	UpdateFields(ctx context.Context, id string, set map[string]interface{}, unset []string) error

	// SoftDelete marks the visit deleted without touching its lifecycle state.
	SoftDelete(ctx context.Context, id string) error
}
