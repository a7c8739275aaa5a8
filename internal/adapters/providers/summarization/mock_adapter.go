package summarization

import (
	"context"
	"fmt"
	"strings"
)

// MockAdapter produces a trivial summary for local development
type MockAdapter struct{}

// NewMockAdapter creates a new mock summarization adapter
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

// Summarize returns the first few words of the transcript as a fake summary
func (a *MockAdapter) Summarize(ctx context.Context, transcript string) (string, error) {
	words := strings.Fields(transcript)
	if len(words) > 12 {
		words = words[:12]
	}
	return fmt.Sprintf("Summary: %s", strings.Join(words, " ")), nil
}
