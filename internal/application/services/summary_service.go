package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	"github.com/medvoice/scribe-backend/internal/infrastructure/observability"
)

// SummarizationTrigger kicks off summarization for a visit whose
// transcript has been stored. Callers treat the visit as handed off once
// the trigger returns; whether the work runs inline or on a worker is a
// wiring decision.
type SummarizationTrigger interface {
	TriggerSummarization(ctx context.Context, visitID string) error
}

// SummaryService drives the summarizing → completed (or failed) leg of
// the visit lifecycle.
type SummaryService struct {
	repo       repositories.VisitRepository
	summarizer providers.SummarizationProvider
	searchRepo repositories.VisitSearchRepository
	eventBus   providers.EventBus
	now        func() time.Time
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	repo repositories.VisitRepository,
	summarizer providers.SummarizationProvider,
	searchRepo repositories.VisitSearchRepository,
	eventBus providers.EventBus,
) *SummaryService {
	return &SummaryService{
		repo:       repo,
		summarizer: summarizer,
		searchRepo: searchRepo,
		eventBus:   eventBus,
		now:        time.Now,
	}
}

// TriggerSummarization summarizes the visit's transcript and completes
// the lifecycle. A visit without a transcript, or a summarizer failure,
// transitions the visit to failed instead of leaving it stuck.
func (s *SummaryService) TriggerSummarization(ctx context.Context, visitID string) error {
	logger := observability.LoggerFromContext(ctx)

	visit, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return err
	}

	transcript := visit.TranscriptContent()
	if strings.TrimSpace(transcript) == "" {
		logger.Warn().Str("visit_id", visitID).Msg("summarization requested without transcript")
		return s.markFailed(ctx, visit)
	}

	summary, err := s.summarizer.Summarize(ctx, transcript)
	if err != nil {
		logger.Error().Err(err).Str("visit_id", visitID).Msg("summarization failed")
		return s.markFailed(ctx, visit)
	}

	now := s.now()
	set := map[string]interface{}{
		"summary":          summary,
		"processingStatus": string(entities.ProcessingStatusCompleted),
		"status":           string(entities.VisitStatusCompleted),
		"updatedAt":        now,
	}
	if err := s.repo.UpdateFields(ctx, visit.ID, set, nil); err != nil {
		return err
	}

	visit.Summary = summary
	visit.ProcessingStatus = entities.ProcessingStatusCompleted
	visit.Status = entities.VisitStatusCompleted

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, visit); err != nil {
			logger.Warn().Err(err).Str("visit_id", visit.ID).Msg("failed to index visit for search")
		}
	}

	s.publish(ctx, visit, entities.VisitEventCompleted, entities.ProcessingStatusCompleted)
	return nil
}

func (s *SummaryService) markFailed(ctx context.Context, visit *entities.Visit) error {
	set := map[string]interface{}{
		"processingStatus": string(entities.ProcessingStatusFailed),
		"status":           string(entities.VisitStatusFailed),
		"updatedAt":        s.now(),
	}
	if err := s.repo.UpdateFields(ctx, visit.ID, set, nil); err != nil {
		return err
	}
	s.publish(ctx, visit, entities.VisitEventFailed, entities.ProcessingStatusFailed)
	return nil
}

func (s *SummaryService) publish(ctx context.Context, visit *entities.Visit, eventType entities.VisitEventType, status entities.ProcessingStatus) {
	if s.eventBus == nil {
		return
	}
	event := &entities.VisitEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		VisitID:     visit.ID,
		OwnerUserID: visit.OwnerUserID,
		Status:      status,
		Timestamp:   s.now(),
	}
	if err := s.eventBus.Publish(ctx, entities.VisitLifecycleChannel, event); err != nil {
		log.Warn().Err(err).Str("visit_id", visit.ID).Msg("failed to publish lifecycle event")
	}
}
