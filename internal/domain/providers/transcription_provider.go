package providers

import "context"

// TranscriptionProvider submits audio to an external speech-to-text
// service. The service reports completion or failure asynchronously via
// webhook, referencing the returned transcription id.
type TranscriptionProvider interface {
	// SubmitAudio starts transcription of the blob at storagePath and
	// returns the provider-issued transcription id.
	SubmitAudio(ctx context.Context, visitID, storagePath string) (string, error)
}
