package repositories

import (
	"context"
	"time"
)

// WebhookDelivery is one recorded transcription webhook delivery,
// including duplicates and deliveries that matched no visit.
type WebhookDelivery struct {
	ID              string
	TranscriptionID string
	Status          string
	ErrorMessage    string
	Matched         bool
	VisitID         string
	ReceivedAt      time.Time
}

// WebhookJournal is an append-only audit trail of webhook deliveries.
// Recording is best-effort; ingestion never fails because the journal does.
type WebhookJournal interface {
	Record(ctx context.Context, delivery *WebhookDelivery) error
}
