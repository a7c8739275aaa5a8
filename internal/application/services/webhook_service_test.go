package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

func newWebhookService(repo *MockVisitRepository, journal *MockWebhookJournal, trigger *MockSummarizationTrigger, bus *MockEventBus, at time.Time) *WebhookService {
	var j repositories.WebhookJournal
	if journal != nil {
		j = journal
	}
	var tr SummarizationTrigger
	if trigger != nil {
		tr = trigger
	}
	var b providers.EventBus
	if bus != nil {
		b = bus
	}
	service := NewWebhookService(repo, j, tr, b, nil)
	service.now = func() time.Time { return at }
	return service
}

func transcribingVisit() *entities.Visit {
	return &entities.Visit{
		ID:               "visit-1",
		OwnerUserID:      "user-1",
		ProcessingStatus: entities.ProcessingStatusTranscribing,
		Status:           entities.VisitStatusProcessing,
		TranscriptionID:  "tr-1",
	}
}

func TestWebhookService_Ingest_UnmatchedIsNoOp(t *testing.T) {
	repo := new(MockVisitRepository)
	journal := new(MockWebhookJournal)

	repo.On("FindByTranscriptionID", mock.Anything, "tr-stale").
		Return(nil, apperrors.NewNotFoundError("visit not found"))

	var recorded *repositories.WebhookDelivery
	journal.On("Record", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*repositories.WebhookDelivery)
		}).
		Return(nil)

	service := newWebhookService(repo, journal, nil, nil, time.Now())

	err := service.Ingest(context.Background(), "tr-stale", TranscriptionOutcome{
		Status:     OutcomeSuccess,
		Transcript: "late transcript",
	})

	assert.NoError(t, err)
	assert.NotNil(t, recorded)
	assert.False(t, recorded.Matched)
	assert.Equal(t, "tr-stale", recorded.TranscriptionID)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookService_Ingest_DeletedVisitIsNoOp(t *testing.T) {
	deletedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	visit := transcribingVisit()
	visit.DeletedAt = &deletedAt

	repo := new(MockVisitRepository)
	journal := new(MockWebhookJournal)
	trigger := new(MockSummarizationTrigger)

	repo.On("FindByTranscriptionID", mock.Anything, "tr-1").Return(visit, nil)

	var recorded *repositories.WebhookDelivery
	journal.On("Record", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*repositories.WebhookDelivery)
		}).
		Return(nil)

	service := newWebhookService(repo, journal, trigger, nil, time.Now())

	err := service.Ingest(context.Background(), "tr-1", TranscriptionOutcome{
		Status:     OutcomeSuccess,
		Transcript: "transcript for a deleted visit",
	})

	assert.NoError(t, err)
	assert.NotNil(t, recorded)
	assert.False(t, recorded.Matched)
	assert.Equal(t, "visit-1", recorded.VisitID)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	trigger.AssertNotCalled(t, "TriggerSummarization", mock.Anything, mock.Anything)
}

func TestWebhookService_Ingest_SuccessStoresTranscript(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(MockVisitRepository)
	trigger := new(MockSummarizationTrigger)
	bus := new(MockEventBus)

	repo.On("FindByTranscriptionID", mock.Anything, "tr-1").Return(transcribingVisit(), nil)

	var set map[string]interface{}
	repo.On("UpdateFields", mock.Anything, "visit-1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			set = args.Get(2).(map[string]interface{})
		}).
		Return(nil)
	trigger.On("TriggerSummarization", mock.Anything, "visit-1").Return(nil)
	bus.On("Publish", mock.Anything, entities.VisitLifecycleChannel, mock.Anything).Return(nil)

	service := newWebhookService(repo, nil, trigger, bus, now)

	err := service.Ingest(context.Background(), "tr-1", TranscriptionOutcome{
		Status:     OutcomeSuccess,
		Transcript: "patient reports mild headache",
	})

	assert.NoError(t, err)
	assert.Equal(t, "patient reports mild headache", set["transcript"])
	assert.Equal(t, string(entities.ProcessingStatusSummarizing), set["processingStatus"])
	assert.Equal(t, string(entities.VisitStatusProcessing), set["status"])
	trigger.AssertCalled(t, "TriggerSummarization", mock.Anything, "visit-1")
}

func TestWebhookService_Ingest_RedeliveryIsNoOp(t *testing.T) {
	for _, status := range []entities.ProcessingStatus{
		entities.ProcessingStatusSummarizing,
		entities.ProcessingStatusFinalizing,
		entities.ProcessingStatusFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			visit := transcribingVisit()
			visit.ProcessingStatus = status

			repo := new(MockVisitRepository)
			trigger := new(MockSummarizationTrigger)

			repo.On("FindByTranscriptionID", mock.Anything, "tr-1").Return(visit, nil)

			service := newWebhookService(repo, nil, trigger, nil, time.Now())

			err := service.Ingest(context.Background(), "tr-1", TranscriptionOutcome{
				Status:     OutcomeSuccess,
				Transcript: "duplicate delivery",
			})

			assert.NoError(t, err)
			repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			trigger.AssertNotCalled(t, "TriggerSummarization", mock.Anything, mock.Anything)
		})
	}
}

func TestWebhookService_Ingest_ErrorMarksFailed(t *testing.T) {
	repo := new(MockVisitRepository)
	bus := new(MockEventBus)

	repo.On("FindByTranscriptionID", mock.Anything, "tr-1").Return(transcribingVisit(), nil)

	var set map[string]interface{}
	repo.On("UpdateFields", mock.Anything, "visit-1", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			set = args.Get(2).(map[string]interface{})
		}).
		Return(nil)

	var published *entities.VisitEvent
	bus.On("Publish", mock.Anything, entities.VisitLifecycleChannel, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(*entities.VisitEvent)
		}).
		Return(nil)

	service := newWebhookService(repo, nil, nil, bus, time.Now())

	err := service.Ingest(context.Background(), "tr-1", TranscriptionOutcome{
		Status: OutcomeError,
		Error:  "audio unreadable",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entities.ProcessingStatusFailed), set["processingStatus"])
	assert.Equal(t, string(entities.VisitStatusFailed), set["status"])
	_, touched := set["transcript"]
	assert.False(t, touched)
	if assert.NotNil(t, published) {
		assert.Equal(t, entities.VisitEventFailed, published.Type)
	}
}

func TestWebhookService_Ingest_ErrorAfterSettledIsNoOp(t *testing.T) {
	visit := transcribingVisit()
	visit.ProcessingStatus = entities.ProcessingStatusCompleted
	visit.Summary = "SOAP note"

	repo := new(MockVisitRepository)
	repo.On("FindByTranscriptionID", mock.Anything, "tr-1").Return(visit, nil)

	service := newWebhookService(repo, nil, nil, nil, time.Now())

	err := service.Ingest(context.Background(), "tr-1", TranscriptionOutcome{
		Status: OutcomeError,
		Error:  "late failure report",
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookService_Ingest_JournalFailureDoesNotBlock(t *testing.T) {
	repo := new(MockVisitRepository)
	journal := new(MockWebhookJournal)
	trigger := new(MockSummarizationTrigger)

	repo.On("FindByTranscriptionID", mock.Anything, "tr-1").Return(transcribingVisit(), nil)
	journal.On("Record", mock.Anything, mock.Anything).Return(assert.AnError)
	repo.On("UpdateFields", mock.Anything, "visit-1", mock.Anything, mock.Anything).Return(nil)
	trigger.On("TriggerSummarization", mock.Anything, "visit-1").Return(nil)

	service := newWebhookService(repo, journal, trigger, nil, time.Now())

	err := service.Ingest(context.Background(), "tr-1", TranscriptionOutcome{
		Status:     OutcomeSuccess,
		Transcript: "transcript",
	})

	assert.NoError(t, err)
	repo.AssertCalled(t, "UpdateFields", mock.Anything, "visit-1", mock.Anything, mock.Anything)
}
