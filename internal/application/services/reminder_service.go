package services

import (
	"context"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
)

// ReminderService lists patient reminders. Reminders share the visit
// listing's cursor pagination.
type ReminderService struct {
	repo repositories.ReminderRepository
}

// NewReminderService creates a new reminder service
func NewReminderService(repo repositories.ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

// List returns a page of the caller's reminders
func (s *ReminderService) List(ctx context.Context, callerID, limit, cursor, sortDirection string) (*repositories.Page[*entities.Reminder], error) {
	opts, err := parseListOptions(limit, cursor, sortDirection)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, callerID, opts)
}
