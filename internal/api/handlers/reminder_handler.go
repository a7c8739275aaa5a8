package handlers

import (
	"context"
	"net/http"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
)

type reminderService interface {
	List(ctx context.Context, callerID, limit, cursor, sortDirection string) (*repositories.Page[*entities.Reminder], error)
}

// ReminderHandler handles reminder-related HTTP requests
type ReminderHandler struct {
	service reminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(service reminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// ListReminders handles GET /api/reminders
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		respondWithError(w, http.StatusUnauthorized, "caller identity is required")
		return
	}

	query := r.URL.Query()
	page, err := h.service.List(r.Context(), caller,
		query.Get("limit"), query.Get("cursor"), query.Get("sortDirection"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if page.HasMore {
		w.Header().Set("X-Has-More", "true")
		w.Header().Set("X-Next-Cursor", page.NextCursor)
	}

	items := page.Items
	if items == nil {
		items = []*entities.Reminder{}
	}
	respondWithJSON(w, http.StatusOK, items)
}
