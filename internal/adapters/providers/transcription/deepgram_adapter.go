package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/medvoice/scribe-backend/pkg/config"
)

// DeepgramAdapter submits audio to Deepgram's async transcription API.
// Deepgram transcribes the referenced blob in the background and reports
// the result to the configured callback URL, tagged with the request id
// this adapter returns.
type DeepgramAdapter struct {
	apiKey      string
	baseURL     string
	callbackURL string
	model       string
	httpClient  *http.Client
}

// NewDeepgramAdapter creates a new Deepgram transcription adapter
func NewDeepgramAdapter(cfg *config.TranscriptionConfig) (*DeepgramAdapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("transcription api key is required")
	}
	if cfg.CallbackURL == "" {
		return nil, errors.New("transcription callback url is required")
	}

	return &DeepgramAdapter{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		callbackURL: cfg.CallbackURL,
		model:       cfg.Model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

type submitRequest struct {
	URL string `json:"url"`
}

type submitResponse struct {
	RequestID string `json:"request_id"`
}

// SubmitAudio starts an async transcription of the audio blob and returns
// the provider-issued request id.
func (a *DeepgramAdapter) SubmitAudio(ctx context.Context, visitID, storagePath string) (string, error) {
	payload, err := json.Marshal(submitRequest{URL: storagePath})
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcription request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/listen?model=%s&callback=%s&tag=%s",
		a.baseURL,
		url.QueryEscape(a.model),
		url.QueryEscape(a.callbackURL),
		url.QueryEscape(visitID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription provider returned status %d", resp.StatusCode)
	}

	var result submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}
	if result.RequestID == "" {
		return "", errors.New("transcription provider returned no request id")
	}

	return result.RequestID, nil
}
