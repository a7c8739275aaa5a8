package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	"github.com/medvoice/scribe-backend/internal/infrastructure/observability"
)

// PurgeOptions controls one purge pass.
type PurgeOptions struct {
	RetentionDays int
	PageSize      int
	Collections   []string
}

// PurgeReport summarizes one purge pass across all collections.
type PurgeReport struct {
	TotalScanned  int            `json:"total_scanned"`
	TotalPurged   int            `json:"total_purged"`
	HasMore       bool           `json:"has_more"`
	PerCollection map[string]int `json:"per_collection"`
}

// RetentionService permanently removes soft-deleted records once their
// retention window expires. One call processes at most PageSize records
// per collection; callers loop until HasMore is false.
type RetentionService struct {
	repo       repositories.RetentionRepository
	blobStore  providers.BlobStore
	searchRepo repositories.VisitSearchRepository
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewRetentionService creates a new retention service
func NewRetentionService(
	repo repositories.RetentionRepository,
	blobStore providers.BlobStore,
	searchRepo repositories.VisitSearchRepository,
	metrics *observability.Metrics,
) *RetentionService {
	return &RetentionService{
		repo:       repo,
		blobStore:  blobStore,
		searchRepo: searchRepo,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Purge runs one bounded purge pass. A failure in one collection is
// logged and does not stop the others.
func (s *RetentionService) Purge(ctx context.Context, opts PurgeOptions) (*PurgeReport, error) {
	logger := observability.LoggerFromContext(ctx)

	cutoff := s.now().AddDate(0, 0, -opts.RetentionDays)
	report := &PurgeReport{PerCollection: make(map[string]int)}

	for _, collection := range opts.Collections {
		expired, err := s.repo.QueryExpired(ctx, collection, cutoff, opts.PageSize)
		if err != nil {
			logger.Error().Err(err).Str("collection", collection).Msg("failed to query expired records")
			continue
		}
		report.TotalScanned += len(expired)
		if len(expired) == 0 {
			continue
		}
		// A full page means more candidates remain whether or not the
		// delete below succeeds; a failed batch stays queryable.
		if len(expired) == opts.PageSize {
			report.HasMore = true
		}

		if collection == entities.CollectionVisits {
			s.reclaimVisitArtifacts(ctx, expired)
		}

		ids := make([]string, 0, len(expired))
		for _, record := range expired {
			ids = append(ids, record.ID)
		}
		if err := s.repo.BatchDelete(ctx, collection, ids); err != nil {
			logger.Error().Err(err).Str("collection", collection).Msg("failed to delete expired records")
			continue
		}

		report.TotalPurged += len(ids)
		report.PerCollection[collection] = len(ids)

		logger.Info().
			Str("collection", collection).
			Int("purged", len(ids)).
			Msg("purged expired records")
		observability.RecordPurgeMetric(ctx, s.metrics, collection, len(ids))
	}

	return report, nil
}

// reclaimVisitArtifacts removes the audio blob and search document for
// each purged visit. Both are best-effort: a leaked blob is preferable
// to a purge pass that never finishes.
func (s *RetentionService) reclaimVisitArtifacts(ctx context.Context, expired []repositories.ExpiredRecord) {
	for _, record := range expired {
		if s.blobStore != nil && record.StoragePath != "" {
			if err := s.blobStore.Delete(ctx, record.StoragePath); err != nil {
				log.Warn().Err(err).Str("visit_id", record.ID).Msg("failed to delete audio blob")
			}
		}
		if s.searchRepo != nil {
			if err := s.searchRepo.Remove(ctx, record.ID); err != nil {
				log.Warn().Err(err).Str("visit_id", record.ID).Msg("failed to remove visit from search index")
			}
		}
	}
}
