package providers

import "context"

// SummarizationProvider turns a visit transcript into a clinical summary.
type SummarizationProvider interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
