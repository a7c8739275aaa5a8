package transcription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MockAdapter issues fake transcription ids for local development.
// No webhook ever arrives; drive the lifecycle by posting to the
// webhook endpoint manually.
type MockAdapter struct{}

// NewMockAdapter creates a new mock transcription adapter
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

// SubmitAudio returns a fresh fake transcription id
func (a *MockAdapter) SubmitAudio(ctx context.Context, visitID, storagePath string) (string, error) {
	id := fmt.Sprintf("mock-%s", uuid.New().String())
	log.Info().
		Str("visit_id", visitID).
		Str("storage_path", storagePath).
		Str("transcription_id", id).
		Msg("mock transcription submitted")
	return id, nil
}
