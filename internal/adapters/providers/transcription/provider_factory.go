package transcription

import (
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/pkg/config"
	"github.com/rs/zerolog/log"
)

// NewTranscriptionProvider selects the configured transcription provider,
// falling back to the mock when no API key is set.
func NewTranscriptionProvider(cfg *config.TranscriptionConfig) providers.TranscriptionProvider {
	if cfg.APIKey == "" {
		log.Warn().Msg("no transcription api key configured; using mock provider")
		return NewMockAdapter()
	}

	adapter, err := NewDeepgramAdapter(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to configure transcription provider; using mock provider")
		return NewMockAdapter()
	}
	return adapter
}
