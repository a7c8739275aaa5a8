package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/medvoice/scribe-backend/internal/application/services"
)

type webhookService interface {
	Ingest(ctx context.Context, transcriptionID string, outcome services.TranscriptionOutcome) error
}

// TranscriptionWebhookHandler receives transcription results from the
// speech-to-text provider. The provider retries undelivered webhooks, so
// the handler acknowledges every delivery it can attribute, including
// duplicates and results for visits that have moved on.
type TranscriptionWebhookHandler struct {
	service webhookService
}

// NewTranscriptionWebhookHandler creates a new transcription webhook handler
func NewTranscriptionWebhookHandler(service webhookService) *TranscriptionWebhookHandler {
	return &TranscriptionWebhookHandler{service: service}
}

// transcriptionWebhookPayload covers both the provider's native callback
// shape and the flat shape used by internal tooling.
type transcriptionWebhookPayload struct {
	RequestID       string `json:"request_id"`
	TranscriptionID string `json:"transcription_id"`
	Status          string `json:"status"`
	Error           string `json:"error"`
	Transcript      string `json:"transcript"`

	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (p *transcriptionWebhookPayload) transcriptionID() string {
	if p.TranscriptionID != "" {
		return p.TranscriptionID
	}
	if p.RequestID != "" {
		return p.RequestID
	}
	return p.Metadata.RequestID
}

func (p *transcriptionWebhookPayload) outcome() services.TranscriptionOutcome {
	transcript := p.Transcript
	if transcript == "" {
		for _, channel := range p.Results.Channels {
			for _, alt := range channel.Alternatives {
				if alt.Transcript != "" {
					transcript = alt.Transcript
					break
				}
			}
			if transcript != "" {
				break
			}
		}
	}

	status := p.Status
	if status == "" {
		if p.Error != "" {
			status = services.OutcomeError
		} else {
			status = services.OutcomeSuccess
		}
	}

	return services.TranscriptionOutcome{
		Status:     status,
		Transcript: transcript,
		Error:      p.Error,
	}
}

// HandleWebhook processes POST /api/webhooks/transcription
func (h *TranscriptionWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload transcriptionWebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	transcriptionID := payload.transcriptionID()
	if transcriptionID == "" {
		respondWithError(w, http.StatusBadRequest, "transcription id is required")
		return
	}

	if err := h.service.Ingest(r.Context(), transcriptionID, payload.outcome()); err != nil {
		// Infrastructure failure. Refuse the delivery so the provider
		// redelivers it once the store recovers.
		log.Error().Err(err).Str("transcription_id", transcriptionID).Msg("webhook ingestion failed")
		respondWithError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}
