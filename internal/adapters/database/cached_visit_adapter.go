package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/providers"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	"github.com/medvoice/scribe-backend/internal/infrastructure/observability"
)

// visitByIDTTL is the cache lifetime for single-visit reads, in seconds.
const visitByIDTTL = 300

// CachedVisitAdapter wraps a VisitRepository with read-through caching on
// GetByID. Listing and webhook resolution always hit the store: both must
// observe the freshest lifecycle state.
type CachedVisitAdapter struct {
	adapter repositories.VisitRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedVisitAdapter creates a new cached visit adapter
func NewCachedVisitAdapter(adapter repositories.VisitRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.VisitRepository {
	return &CachedVisitAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

func visitCacheKey(id string) string {
	return fmt.Sprintf("visit:%s", id)
}

// Create passes through and primes nothing; the first read populates the cache.
func (a *CachedVisitAdapter) Create(ctx context.Context, visit *entities.Visit) error {
	return a.adapter.Create(ctx, visit)
}

// GetByID retrieves a visit with read-through caching
func (a *CachedVisitAdapter) GetByID(ctx context.Context, id string) (*entities.Visit, error) {
	cacheKey := visitCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var visit entities.Visit
		if err := json.Unmarshal(cached, &visit); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, "visit")
			return &visit, nil
		}
	}
	observability.RecordCacheMiss(ctx, a.metrics, "visit")

	visit, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(visit); err == nil {
		// Best effort; a failed cache write only costs the next read.
		_ = a.cache.Set(ctx, cacheKey, data, visitByIDTTL)
	}

	return visit, nil
}

// FindByTranscriptionID always reads the store
func (a *CachedVisitAdapter) FindByTranscriptionID(ctx context.Context, transcriptionID string) (*entities.Visit, error) {
	return a.adapter.FindByTranscriptionID(ctx, transcriptionID)
}

// List always reads the store
func (a *CachedVisitAdapter) List(ctx context.Context, ownerID string, opts repositories.ListOptions) (*repositories.Page[*entities.Visit], error) {
	return a.adapter.List(ctx, ownerID, opts)
}

// UpdateFields invalidates the cached visit after the write
func (a *CachedVisitAdapter) UpdateFields(ctx context.Context, id string, set map[string]interface{}, unset []string) error {
	if err := a.adapter.UpdateFields(ctx, id, set, unset); err != nil {
		return err
	}
	_ = a.cache.Delete(ctx, visitCacheKey(id))
	return nil
}

// SoftDelete invalidates the cached visit after the write
func (a *CachedVisitAdapter) SoftDelete(ctx context.Context, id string) error {
	if err := a.adapter.SoftDelete(ctx, id); err != nil {
		return err
	}
	_ = a.cache.Delete(ctx, visitCacheKey(id))
	return nil
}
