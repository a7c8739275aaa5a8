package repositories

import (
	"context"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
)

// ReminderRepository defines the interface for reminder persistence.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entities.Reminder) error

	// List returns active reminders owned by ownerID, ordered by createdAt,
	// paginated per opts. Shares pagination semantics with VisitRepository.
	List(ctx context.Context, ownerID string, opts ListOptions) (*Page[*entities.Reminder], error)
}
