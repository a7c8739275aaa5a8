package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	fsclient "github.com/medvoice/scribe-backend/internal/infrastructure/clients/firestore"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// VisitAdapter implements the VisitRepository interface on Firestore
type VisitAdapter struct {
	client *fsclient.Client
}

// NewVisitAdapter creates a new visit adapter
func NewVisitAdapter(client *fsclient.Client) repositories.VisitRepository {
	return &VisitAdapter{client: client}
}

func (a *VisitAdapter) collection() *firestore.CollectionRef {
	return a.client.Client().Collection(entities.CollectionVisits)
}

// Create creates a new visit document
func (a *VisitAdapter) Create(ctx context.Context, visit *entities.Visit) error {
	if _, err := a.collection().Doc(visit.ID).Create(ctx, visit); err != nil {
		return apperrors.NewInternalError("failed to create visit", err)
	}
	return nil
}

// GetByID retrieves a visit by ID
func (a *VisitAdapter) GetByID(ctx context.Context, id string) (*entities.Visit, error) {
	snap, err := a.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("visit with id %s not found", id))
		}
		return nil, apperrors.NewInternalError("failed to get visit", err)
	}

	return decodeVisit(snap)
}

// FindByTranscriptionID resolves the visit currently bound to a
// transcription id. A superseded or unknown id resolves to nothing.
func (a *VisitAdapter) FindByTranscriptionID(ctx context.Context, transcriptionID string) (*entities.Visit, error) {
	docs, err := a.collection().
		Where("transcriptionId", "==", transcriptionID).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query visit by transcription id", err)
	}
	if len(docs) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no visit bound to transcription id %s", transcriptionID))
	}

	return decodeVisit(docs[0])
}

// List returns active visits owned by ownerID, ordered by createdAt and
// paginated per opts. With no limit the full result set is returned and
// no continuation metadata is produced.
func (a *VisitAdapter) List(ctx context.Context, ownerID string, opts repositories.ListOptions) (*repositories.Page[*entities.Visit], error) {
	col := a.collection()
	q := col.
		Where("ownerUserId", "==", ownerID).
		Where("deletedAt", "==", nil).
		OrderBy("createdAt", sortDirection(opts.SortDirection))

	if opts.Cursor != "" {
		snap, err := resolveCursor(ctx, col, opts.Cursor, ownerID)
		if err != nil {
			return nil, err
		}
		q = q.StartAfter(snap)
	}

	if opts.Limit > 0 {
		// Fetch one extra document to learn whether another page exists.
		q = q.Limit(opts.Limit + 1)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list visits", err)
	}

	visits := make([]*entities.Visit, 0, len(docs))
	for _, doc := range docs {
		visit, err := decodeVisit(doc)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}

	return clampPage(visits, opts.Limit, func(v *entities.Visit) string { return v.ID }), nil
}

// UpdateFields applies set and unset to the visit document in a single
// atomic update.
func (a *VisitAdapter) UpdateFields(ctx context.Context, id string, set map[string]interface{}, unset []string) error {
	updates := make([]firestore.Update, 0, len(set)+len(unset))
	for path, value := range set {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	for _, path := range unset {
		updates = append(updates, firestore.Update{Path: path, Value: firestore.Delete})
	}

	if _, err := a.collection().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return apperrors.NewNotFoundError(fmt.Sprintf("visit with id %s not found", id))
		}
		return apperrors.NewInternalError("failed to update visit", err)
	}
	return nil
}

// SoftDelete marks the visit deleted. The lifecycle state is untouched;
// physical removal is the retention purger's job.
func (a *VisitAdapter) SoftDelete(ctx context.Context, id string) error {
	return a.UpdateFields(ctx, id, map[string]interface{}{
		"deletedAt": time.Now(),
		"updatedAt": time.Now(),
	}, nil)
}

func decodeVisit(snap *firestore.DocumentSnapshot) (*entities.Visit, error) {
	visit := &entities.Visit{}
	if err := snap.DataTo(visit); err != nil {
		return nil, apperrors.NewInternalError("failed to decode visit document", err)
	}
	visit.ID = snap.Ref.ID
	return visit, nil
}
