package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	"github.com/medvoice/scribe-backend/internal/infrastructure/observability"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

// TranscriptionOutcome is the payload of one transcription webhook
// delivery, normalized from the provider's wire format by the handler.
type TranscriptionOutcome struct {
	Status     string
	Transcript string
	Error      string
}

const (
	// OutcomeSuccess and OutcomeError are the two delivery statuses the
	// transcription provider reports.
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// WebhookService ingests transcription webhook deliveries. Ingestion is
// idempotent under at-least-once redelivery: deliveries that match no
// visit, or arrive after the visit has moved on, are absorbed without
// side effects.
type WebhookService struct {
	repo       repositories.VisitRepository
	journal    repositories.WebhookJournal
	summarizer SummarizationTrigger
	eventBus   providers.EventBus
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewWebhookService creates a new webhook ingestion service
func NewWebhookService(
	repo repositories.VisitRepository,
	journal repositories.WebhookJournal,
	summarizer SummarizationTrigger,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *WebhookService {
	return &WebhookService{
		repo:       repo,
		journal:    journal,
		summarizer: summarizer,
		eventBus:   eventBus,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Ingest applies one webhook delivery to the visit it references.
// It returns an error only for infrastructure failures; every delivery
// outcome, including stale and unmatched ones, is a successful ingestion.
func (s *WebhookService) Ingest(ctx context.Context, transcriptionID string, outcome TranscriptionOutcome) error {
	logger := observability.LoggerFromContext(ctx)

	visit, err := s.repo.FindByTranscriptionID(ctx, transcriptionID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			// A retry issued a newer transcription id, or the record
			// was purged. Either way this delivery is obsolete.
			logger.Info().
				Str("transcription_id", transcriptionID).
				Msg("webhook matched no visit; acknowledged as no-op")
			s.record(ctx, transcriptionID, outcome, false, "")
			observability.RecordWebhookMetric(ctx, s.metrics, outcome.Status, false)
			return nil
		}
		return err
	}

	if visit.DeletedAt != nil {
		// The owner deleted the visit while transcription was in flight.
		// The record is awaiting purge; nothing may mutate it.
		logger.Info().
			Str("transcription_id", transcriptionID).
			Str("visit_id", visit.ID).
			Msg("webhook matched a deleted visit; acknowledged as no-op")
		s.record(ctx, transcriptionID, outcome, false, visit.ID)
		observability.RecordWebhookMetric(ctx, s.metrics, outcome.Status, false)
		return nil
	}

	s.record(ctx, transcriptionID, outcome, true, visit.ID)
	observability.RecordWebhookMetric(ctx, s.metrics, outcome.Status, true)

	if outcome.Status == OutcomeSuccess {
		return s.ingestSuccess(ctx, visit, outcome)
	}
	return s.ingestError(ctx, visit, outcome)
}

func (s *WebhookService) ingestSuccess(ctx context.Context, visit *entities.Visit, outcome TranscriptionOutcome) error {
	logger := observability.LoggerFromContext(ctx)

	switch entities.NormalizeProcessingStatus(visit) {
	case entities.ProcessingStatusPending, entities.ProcessingStatusProcessing, entities.ProcessingStatusTranscribing:
	default:
		// A redelivery, or the visit already advanced past transcription.
		logger.Info().
			Str("visit_id", visit.ID).
			Str("processing_status", string(visit.ProcessingStatus)).
			Msg("webhook arrived after visit moved on; acknowledged as no-op")
		return nil
	}

	set := map[string]interface{}{
		"transcript":       outcome.Transcript,
		"processingStatus": string(entities.ProcessingStatusSummarizing),
		"status":           string(entities.VisitStatusProcessing),
		"updatedAt":        s.now(),
	}
	if err := s.repo.UpdateFields(ctx, visit.ID, set, nil); err != nil {
		return err
	}

	s.publish(ctx, visit, entities.VisitEventTranscribed, entities.ProcessingStatusSummarizing)

	if s.summarizer != nil {
		if err := s.summarizer.TriggerSummarization(ctx, visit.ID); err != nil {
			logger.Error().Err(err).Str("visit_id", visit.ID).Msg("summarization trigger failed")
		}
	}
	return nil
}

func (s *WebhookService) ingestError(ctx context.Context, visit *entities.Visit, outcome TranscriptionOutcome) error {
	logger := observability.LoggerFromContext(ctx)

	if entities.NormalizeProcessingStatus(visit).Terminal() {
		logger.Info().
			Str("visit_id", visit.ID).
			Str("processing_status", string(visit.ProcessingStatus)).
			Msg("failure webhook for settled visit; acknowledged as no-op")
		return nil
	}

	logger.Warn().
		Str("visit_id", visit.ID).
		Str("provider_error", outcome.Error).
		Msg("transcription failed")

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

func (s *WebhookService) record(ctx context.Context, transcriptionID string, outcome TranscriptionOutcome, matched bool, visitID string) {
	if s.journal == nil {
		return
	}
	delivery := &repositories.WebhookDelivery{
		ID:              uuid.New().String(),
		TranscriptionID: transcriptionID,
		Status:          outcome.Status,
		ErrorMessage:    outcome.Error,
		Matched:         matched,
		VisitID:         visitID,
		ReceivedAt:      s.now(),
	}
	if err := s.journal.Record(ctx, delivery); err != nil {
		log.Warn().Err(err).Str("transcription_id", transcriptionID).Msg("failed to journal webhook delivery")
	}
}

func (s *WebhookService) publish(ctx context.Context, visit *entities.Visit, eventType entities.VisitEventType, status entities.ProcessingStatus) {
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
