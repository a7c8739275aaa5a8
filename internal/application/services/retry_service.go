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
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

// RetryResult reports where an accepted retry resumed the pipeline.
type RetryResult struct {
	ProcessingStatus entities.ProcessingStatus `json:"processing_status"`
	TranscriptionID  string                    `json:"transcription_id,omitempty"`
}

// RetryService re-enters failed visits into the processing pipeline.
// A retry resumes from the latest stage whose output survived: a visit
// that already holds a transcript goes straight to summarization, one
// without is re-submitted for transcription.
type RetryService struct {
	repo        repositories.VisitRepository
	transcriber providers.TranscriptionProvider
	summarizer  SummarizationTrigger
	eventBus    providers.EventBus
	metrics     *observability.Metrics
	throttle    time.Duration
	now         func() time.Time
}

// NewRetryService creates a new retry service
func NewRetryService(
	repo repositories.VisitRepository,
	transcriber providers.TranscriptionProvider,
	summarizer SummarizationTrigger,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
	throttle time.Duration,
) *RetryService {
	return &RetryService{
		repo:        repo,
		transcriber: transcriber,
		summarizer:  summarizer,
		eventBus:    eventBus,
		metrics:     metrics,
		throttle:    throttle,
		now:         time.Now,
	}
}

// Retry validates that the visit is eligible and re-enters it into the
// pipeline. Eligibility: the visit is not soft-deleted, the caller owns
// it, it is failed (not in flight, not completed), and the throttle
// window since the last accepted retry has elapsed.
func (s *RetryService) Retry(ctx context.Context, callerID, visitID string) (*RetryResult, error) {
	logger := observability.LoggerFromContext(ctx)

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

	status := entities.NormalizeProcessingStatus(visit)
	if status.InFlight() {
		return nil, apperrors.NewConflictError("visit is already processing")
	}
	if status != entities.ProcessingStatusFailed {
		return nil, apperrors.NewConflictError("only failed visits can be retried")
	}

	now := s.now()
	if visit.LastRetryAt != nil && now.Sub(*visit.LastRetryAt) < s.throttle {
		return nil, apperrors.NewRateLimitedError("retry requested too soon after the previous attempt")
	}

	result := &RetryResult{}
	set := map[string]interface{}{
		"status":      string(entities.VisitStatusProcessing),
		"retryCount":  visit.RetryCount + 1,
		"lastRetryAt": now,
		"updatedAt":   now,
	}

	if strings.TrimSpace(visit.TranscriptContent()) != "" {
		// Transcription already succeeded once; resume at summarization.
		result.ProcessingStatus = entities.ProcessingStatusSummarizing
		set["processingStatus"] = string(entities.ProcessingStatusSummarizing)
	} else {
		transcriptionID, err := s.transcriber.SubmitAudio(ctx, visit.ID, visit.StoragePath)
		if err != nil {
			return nil, apperrors.NewExternalError("failed to submit audio for transcription", err)
		}
		result.ProcessingStatus = entities.ProcessingStatusTranscribing
		result.TranscriptionID = transcriptionID
		set["processingStatus"] = string(entities.ProcessingStatusTranscribing)
		set["transcriptionId"] = transcriptionID
	}

	if err := s.repo.UpdateFields(ctx, visit.ID, set, nil); err != nil {
		return nil, err
	}

	logger.Info().
		Str("visit_id", visit.ID).
		Str("resume_stage", string(result.ProcessingStatus)).
		Int("retry_count", visit.RetryCount+1).
		Msg("retry accepted")
	observability.RecordRetryMetric(ctx, s.metrics, string(result.ProcessingStatus))

	s.publish(ctx, visit, result.ProcessingStatus)

	if result.ProcessingStatus == entities.ProcessingStatusSummarizing && s.summarizer != nil {
		if err := s.summarizer.TriggerSummarization(ctx, visit.ID); err != nil {
			logger.Error().Err(err).Str("visit_id", visit.ID).Msg("summarization trigger failed")
		}
	}

	return result, nil
}

func (s *RetryService) publish(ctx context.Context, visit *entities.Visit, status entities.ProcessingStatus) {
	if s.eventBus == nil {
		return
	}
	event := &entities.VisitEvent{
		ID:          uuid.New().String(),
		Type:        entities.VisitEventRetried,
		VisitID:     visit.ID,
		OwnerUserID: visit.OwnerUserID,
		Status:      status,
		Timestamp:   s.now(),
	}
	if err := s.eventBus.Publish(ctx, entities.VisitLifecycleChannel, event); err != nil {
		log.Warn().Err(err).Str("visit_id", visit.ID).Msg("failed to publish lifecycle event")
	}
}
