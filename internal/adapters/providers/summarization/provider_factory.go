package summarization

import (
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/pkg/config"
	"github.com/rs/zerolog/log"
)

// NewSummarizationProvider selects the configured summarization provider,
// falling back to the mock when no API key is set.
func NewSummarizationProvider(cfg *config.OpenAIConfig) providers.SummarizationProvider {
	if cfg == nil || cfg.APIKey == "" {
		log.Warn().Msg("no openai api key configured; using mock summarization provider")
		return NewMockAdapter()
	}

	adapter, err := NewOpenAIAdapter(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to configure summarization provider; using mock")
		return NewMockAdapter()
	}
	return adapter
}
