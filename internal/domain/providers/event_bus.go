package providers

import (
	"context"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
)

// EventBus publishes visit lifecycle events for downstream consumers.
type EventBus interface {
	Publish(ctx context.Context, channel string, event *entities.VisitEvent) error
	Close() error
}
