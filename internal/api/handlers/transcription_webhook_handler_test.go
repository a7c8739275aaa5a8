package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medvoice/scribe-backend/internal/api/handlers"
	"github.com/medvoice/scribe-backend/internal/application/services"
)

type stubWebhookService struct {
	err error

	lastTranscriptionID string
	lastOutcome         services.TranscriptionOutcome
	calls               int
}

func (s *stubWebhookService) Ingest(ctx context.Context, transcriptionID string, outcome services.TranscriptionOutcome) error {
	s.calls++
	s.lastTranscriptionID = transcriptionID
	s.lastOutcome = outcome
	return s.err
}

func TestTranscriptionWebhookHandler_FlatPayload(t *testing.T) {
	service := &stubWebhookService{}
	handler := handlers.NewTranscriptionWebhookHandler(service)

	body := `{"transcription_id":"tr-1","status":"success","transcript":"patient reports mild headache"}`
	req := httptest.NewRequest("POST", "/api/webhooks/transcription", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleWebhook(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tr-1", service.lastTranscriptionID)
	assert.Equal(t, "success", service.lastOutcome.Status)
	assert.Equal(t, "patient reports mild headache", service.lastOutcome.Transcript)

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "acknowledged", response["status"])
}

func TestTranscriptionWebhookHandler_ProviderPayload(t *testing.T) {
	service := &stubWebhookService{}
	handler := handlers.NewTranscriptionWebhookHandler(service)

	body := `{
		"metadata": {"request_id": "tr-2"},
		"results": {"channels": [{"alternatives": [{"transcript": "follow up in two weeks"}]}]}
	}`
	req := httptest.NewRequest("POST", "/api/webhooks/transcription", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleWebhook(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tr-2", service.lastTranscriptionID)
	assert.Equal(t, "success", service.lastOutcome.Status)
	assert.Equal(t, "follow up in two weeks", service.lastOutcome.Transcript)
}

func TestTranscriptionWebhookHandler_ErrorPayload(t *testing.T) {
	service := &stubWebhookService{}
	handler := handlers.NewTranscriptionWebhookHandler(service)

	body := `{"request_id":"tr-3","error":"audio unreadable"}`
	req := httptest.NewRequest("POST", "/api/webhooks/transcription", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleWebhook(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tr-3", service.lastTranscriptionID)
	assert.Equal(t, "error", service.lastOutcome.Status)
	assert.Equal(t, "audio unreadable", service.lastOutcome.Error)
}

func TestTranscriptionWebhookHandler_MissingID(t *testing.T) {
	service := &stubWebhookService{}
	handler := handlers.NewTranscriptionWebhookHandler(service)

	req := httptest.NewRequest("POST", "/api/webhooks/transcription", strings.NewReader(`{"status":"success"}`))
	w := httptest.NewRecorder()

	handler.HandleWebhook(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, service.calls)
}

func TestTranscriptionWebhookHandler_InvalidJSON(t *testing.T) {
	handler := handlers.NewTranscriptionWebhookHandler(&stubWebhookService{})

	req := httptest.NewRequest("POST", "/api/webhooks/transcription", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.HandleWebhook(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscriptionWebhookHandler_StoreFailureRefusesDelivery(t *testing.T) {
	service := &stubWebhookService{err: assert.AnError}
	handler := handlers.NewTranscriptionWebhookHandler(service)

	body := `{"transcription_id":"tr-1","status":"success","transcript":"t"}`
	req := httptest.NewRequest("POST", "/api/webhooks/transcription", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleWebhook(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
