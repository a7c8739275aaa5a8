package database

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	fsclient "github.com/medvoice/scribe-backend/internal/infrastructure/clients/firestore"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

// ReminderAdapter implements the ReminderRepository interface on Firestore
type ReminderAdapter struct {
	client *fsclient.Client
}

// NewReminderAdapter creates a new reminder adapter
func NewReminderAdapter(client *fsclient.Client) repositories.ReminderRepository {
	return &ReminderAdapter{client: client}
}

func (a *ReminderAdapter) collection() *firestore.CollectionRef {
	return a.client.Client().Collection(entities.CollectionReminders)
}

// Create creates a new reminder document
func (a *ReminderAdapter) Create(ctx context.Context, reminder *entities.Reminder) error {
	if _, err := a.collection().Doc(reminder.ID).Create(ctx, reminder); err != nil {
		return apperrors.NewInternalError("failed to create reminder", err)
	}
	return nil
}

// List returns active reminders owned by ownerID. Pagination semantics
// are identical to visit listing: createdAt ordering, cursor resolution
// against the caller's own result set, limit+1 over-fetch.
func (a *ReminderAdapter) List(ctx context.Context, ownerID string, opts repositories.ListOptions) (*repositories.Page[*entities.Reminder], error) {
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
		q = q.Limit(opts.Limit + 1)
	}

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reminders", err)
	}

	reminders := make([]*entities.Reminder, 0, len(docs))
	for _, doc := range docs {
		reminder := &entities.Reminder{}
		if err := doc.DataTo(reminder); err != nil {
			return nil, apperrors.NewInternalError("failed to decode reminder document", err)
		}
		reminder.ID = doc.Ref.ID
		reminders = append(reminders, reminder)
	}

	return clampPage(reminders, opts.Limit, func(r *entities.Reminder) string { return r.ID }), nil
}
