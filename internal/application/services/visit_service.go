package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

// CreateVisitResult is a freshly created visit together with the signed
// URL the client uploads its audio to.
type CreateVisitResult struct {
	Visit     *entities.Visit `json:"visit"`
	UploadURL string          `json:"upload_url"`
}

// VisitService handles visit CRUD, listing and search. Lifecycle
// transitions live in the webhook, retry and summary services.
type VisitService struct {
	repo         repositories.VisitRepository
	blobStore    providers.BlobStore
	searchRepo   repositories.VisitSearchRepository
	uploadExpiry time.Duration
	now          func() time.Time
}

// NewVisitService creates a new visit service
func NewVisitService(
	repo repositories.VisitRepository,
	blobStore providers.BlobStore,
	searchRepo repositories.VisitSearchRepository,
	uploadExpiry time.Duration,
) *VisitService {
	return &VisitService{
		repo:         repo,
		blobStore:    blobStore,
		searchRepo:   searchRepo,
		uploadExpiry: uploadExpiry,
		now:          time.Now,
	}
}

// Create registers a pending visit and issues a signed URL for the
// audio upload. Transcription starts once the provider webhook confirms
// the upload, so a visit with no audio simply stays pending.
func (s *VisitService) Create(ctx context.Context, ownerID, contentType string) (*CreateVisitResult, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.NewUnauthorizedError("caller identity is required")
	}
	if contentType == "" {
		contentType = "audio/mp4"
	}

	now := s.now()
	visit := &entities.Visit{
		ID:               uuid.New().String(),
		OwnerUserID:      ownerID,
		ProcessingStatus: entities.ProcessingStatusPending,
		Status:           entities.VisitStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	visit.StoragePath = fmt.Sprintf("visits/%s/audio", visit.ID)

	if err := s.repo.Create(ctx, visit); err != nil {
		return nil, err
	}

	result := &CreateVisitResult{Visit: visit}
	if s.blobStore != nil {
		uploadURL, err := s.blobStore.SignedUploadURL(ctx, visit.StoragePath, contentType, s.uploadExpiry)
		if err != nil {
			// The visit exists; the client can request a fresh URL.
			log.Warn().Err(err).Str("visit_id", visit.ID).Msg("failed to sign upload url")
		} else {
			result.UploadURL = uploadURL
		}
	}
	return result, nil
}

// Get returns one visit, owner-checked, with its lifecycle status
// normalized for presentation.
func (s *VisitService) Get(ctx context.Context, callerID, visitID string) (*entities.Visit, error) {
	visit, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit.DeletedAt != nil {
		return nil, apperrors.NewNotFoundError("visit not found")
	}
	if visit.OwnerUserID != callerID {
		return nil, apperrors.NewForbiddenError("visit belongs to another user")
	}

	visit.ProcessingStatus = entities.NormalizeProcessingStatus(visit)
	visit.Status = visit.ProcessingStatus.Coarse()
	return visit, nil
}

// List returns a page of the caller's visits. limit and sortDirection
// arrive as raw query strings; an empty limit disables pagination.
func (s *VisitService) List(ctx context.Context, callerID, limit, cursor, sortDirection string) (*repositories.Page[*entities.Visit], error) {
	opts, err := parseListOptions(limit, cursor, sortDirection)
	if err != nil {
		return nil, err
	}

	page, err := s.repo.List(ctx, callerID, opts)
	if err != nil {
		return nil, err
	}

	for _, visit := range page.Items {
		visit.ProcessingStatus = entities.NormalizeProcessingStatus(visit)
		visit.Status = visit.ProcessingStatus.Coarse()
	}
	return page, nil
}

// Delete soft-deletes the caller's visit. The record and its audio stay
// until the retention purger reclaims them.
func (s *VisitService) Delete(ctx context.Context, callerID, visitID string) error {
	visit, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return err
	}
	if visit.DeletedAt != nil {
		return apperrors.NewNotFoundError("visit not found")
	}
	if visit.OwnerUserID != callerID {
		return apperrors.NewForbiddenError("visit belongs to another user")
	}
	return s.repo.SoftDelete(ctx, visitID)
}

// Search runs an owner-scoped full-text query over completed visits.
func (s *VisitService) Search(ctx context.Context, callerID, query string, limit int) ([]*repositories.VisitSearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("query is required")
	}
	if s.searchRepo == nil {
		return nil, apperrors.NewInternalError("search is not configured", nil)
	}
	if limit <= 0 {
		limit = 20
	}
	return s.searchRepo.Search(ctx, callerID, query, limit)
}

// parseListOptions validates raw pagination query parameters.
func parseListOptions(limit, cursor, sortDirection string) (repositories.ListOptions, error) {
	opts := repositories.ListOptions{
		Cursor:        cursor,
		SortDirection: repositories.SortDesc,
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return opts, apperrors.NewValidationError("limit must be a positive integer")
		}
		opts.Limit = n
	}

	switch sortDirection {
	case "", string(repositories.SortDesc):
	case string(repositories.SortAsc):
		opts.SortDirection = repositories.SortAsc
	default:
		return opts, apperrors.NewValidationError("sortDirection must be asc or desc")
	}

	return opts, nil
}
