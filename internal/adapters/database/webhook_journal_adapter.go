package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	"github.com/medvoice/scribe-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/medvoice/scribe-backend/pkg/errors"
)

// WebhookJournalAdapter implements the WebhookJournal interface on
// PostgreSQL. Every delivery is appended, including duplicates and
// deliveries that matched no visit, so operators can audit the
// at-least-once stream the provider actually sent.
type WebhookJournalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewWebhookJournalAdapter creates a new webhook journal adapter
func NewWebhookJournalAdapter(client *postgres.Client) repositories.WebhookJournal {
	return &WebhookJournalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Record appends one webhook delivery to the journal
func (a *WebhookJournalAdapter) Record(ctx context.Context, delivery *repositories.WebhookDelivery) error {
	record := goqu.Record{
		"id":               delivery.ID,
		"transcription_id": delivery.TranscriptionID,
		"status":           delivery.Status,
		"error_message":    delivery.ErrorMessage,
		"matched":          delivery.Matched,
		"visit_id":         delivery.VisitID,
		"received_at":      delivery.ReceivedAt,
	}

	query, args, err := a.db.Insert("transcription_webhook_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record webhook delivery", err)
	}

	return nil
}
