package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/medvoice/scribe-backend/internal/application/services"
	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
)

// visitService is the slice of the visit service the handler needs.
type visitService interface {
	Create(ctx context.Context, ownerID, contentType string) (*services.CreateVisitResult, error)
	Get(ctx context.Context, callerID, visitID string) (*entities.Visit, error)
	List(ctx context.Context, callerID, limit, cursor, sortDirection string) (*repositories.Page[*entities.Visit], error)
	Delete(ctx context.Context, callerID, visitID string) error
	Search(ctx context.Context, callerID, query string, limit int) ([]*repositories.VisitSearchHit, error)
}

type retryService interface {
	Retry(ctx context.Context, callerID, visitID string) (*services.RetryResult, error)
}

// VisitHandler handles visit-related HTTP requests
type VisitHandler struct {
	visits  visitService
	retries retryService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visits visitService, retries retryService) *VisitHandler {
	return &VisitHandler{
		visits:  visits,
		retries: retries,
	}
}

type createVisitRequest struct {
	ContentType string `json:"content_type"`
}

// CreateVisit handles POST /api/visits
func (h *VisitHandler) CreateVisit(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		respondWithError(w, http.StatusUnauthorized, "caller identity is required")
		return
	}

	var req createVisitRequest
	if r.Body != nil {
		// An empty body is fine; the content type just defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.visits.Create(r.Context(), caller, req.ContentType)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// GetVisit handles GET /api/visits/{id}
func (h *VisitHandler) GetVisit(w http.ResponseWriter, r *http.Request) {
	visitID := r.PathValue("id")
	if visitID == "" {
		respondWithError(w, http.StatusBadRequest, "visit ID is required")
		return
	}

	visit, err := h.visits.Get(r.Context(), callerID(r), visitID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, visit)
}

// ListVisits handles GET /api/visits
func (h *VisitHandler) ListVisits(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		respondWithError(w, http.StatusUnauthorized, "caller identity is required")
		return
	}

	query := r.URL.Query()
	page, err := h.visits.List(r.Context(), caller,
		query.Get("limit"), query.Get("cursor"), query.Get("sortDirection"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// Continuation metadata travels out of band so the body stays a
	// plain array of visits.
	if page.HasMore {
		w.Header().Set("X-Has-More", "true")
		w.Header().Set("X-Next-Cursor", page.NextCursor)
	}

	items := page.Items
	if items == nil {
		items = []*entities.Visit{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

// DeleteVisit handles DELETE /api/visits/{id}
func (h *VisitHandler) DeleteVisit(w http.ResponseWriter, r *http.Request) {
	visitID := r.PathValue("id")
	if visitID == "" {
		respondWithError(w, http.StatusBadRequest, "visit ID is required")
		return
	}

	if err := h.visits.Delete(r.Context(), callerID(r), visitID); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// RetryVisit handles POST /api/visits/{id}/retry
func (h *VisitHandler) RetryVisit(w http.ResponseWriter, r *http.Request) {
	visitID := r.PathValue("id")
	if visitID == "" {
		respondWithError(w, http.StatusBadRequest, "visit ID is required")
		return
	}

	result, err := h.retries.Retry(r.Context(), callerID(r), visitID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusAccepted, result)
}

// SearchVisits handles GET /api/visits/search
func (h *VisitHandler) SearchVisits(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		respondWithError(w, http.StatusUnauthorized, "caller identity is required")
		return
	}

	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	hits, err := h.visits.Search(r.Context(), caller, query.Get("q"), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if hits == nil {
		hits = []*repositories.VisitSearchHit{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hits":  hits,
		"count": len(hits),
	})
}
