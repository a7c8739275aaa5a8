package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/medvoice/scribe-backend/internal/application/services"
	"github.com/medvoice/scribe-backend/pkg/config"
)

type retentionService interface {
	Purge(ctx context.Context, opts services.PurgeOptions) (*services.PurgeReport, error)
}

// PurgeHandler exposes one purge pass over the internal surface. The
// scheduled purge job calls it; it is not reachable through the public
// gateway.
type PurgeHandler struct {
	service  retentionService
	defaults config.ProcessingConfig
}

// NewPurgeHandler creates a new purge handler
func NewPurgeHandler(service retentionService, defaults config.ProcessingConfig) *PurgeHandler {
	return &PurgeHandler{
		service:  service,
		defaults: defaults,
	}
}

type purgeRequest struct {
	RetentionDays int      `json:"retention_days"`
	PageSize      int      `json:"page_size"`
	Collections   []string `json:"collections"`
}

// Purge handles POST /internal/purge
func (h *PurgeHandler) Purge(w http.ResponseWriter, r *http.Request) {
	req := purgeRequest{
		RetentionDays: h.defaults.RetentionDays,
		PageSize:      h.defaults.PurgePageSize,
		Collections:   h.defaults.PurgeCollections,
	}
	if r.Body != nil {
		// Body is optional; absent fields keep the configured defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if req.RetentionDays < 0 || req.PageSize <= 0 || len(req.Collections) == 0 {
		respondWithError(w, http.StatusBadRequest, "invalid purge parameters")
		return
	}

	report, err := h.service.Purge(r.Context(), services.PurgeOptions{
		RetentionDays: req.RetentionDays,
		PageSize:      req.PageSize,
		Collections:   req.Collections,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
