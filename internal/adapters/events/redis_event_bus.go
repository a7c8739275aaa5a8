package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	redisclient "github.com/medvoice/scribe-backend/internal/infrastructure/clients/redis"
	"github.com/rs/zerolog/log"
)

// RedisEventBus implements the EventBus interface using Redis Pub/Sub
type RedisEventBus struct {
	client *redisclient.Client
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{client: client}
}

// Publish publishes a visit lifecycle event to all subscribers
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.VisitEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().
		Str("channel", channel).
		Str("event_type", string(event.Type)).
		Str("visit_id", event.VisitID).
		Msg("published visit lifecycle event")
	return nil
}

// Close closes the event bus
func (b *RedisEventBus) Close() error {
	return nil
}
