package search

import (
	"context"
	"fmt"

	"github.com/medvoice/scribe-backend/internal/domain/entities"
	"github.com/medvoice/scribe-backend/internal/domain/repositories"
	tsclient "github.com/medvoice/scribe-backend/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const collectionName = "visits"

// TypesenseAdapter implements visit search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements VisitSearchRepository
var _ repositories.VisitSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// EnsureCollection ensures the visits collection exists
func (a *TypesenseAdapter) EnsureCollection(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "owner_user_id", Type: "string", Facet: pointer.True()},
			{Name: "summary", Type: "string"},
			{Name: "transcript", Type: "string"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index indexes one completed visit
func (a *TypesenseAdapter) Index(ctx context.Context, visit *entities.Visit) error {
	document := map[string]interface{}{
		"id":            visit.ID,
		"owner_user_id": visit.OwnerUserID,
		"summary":       visit.Summary,
		"transcript":    visit.TranscriptContent(),
		"created_at":    visit.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index visit %s: %w", visit.ID, err)
	}
	return nil
}

// Remove deletes a visit from the index
func (a *TypesenseAdapter) Remove(ctx context.Context, visitID string) error {
	_, err := a.client.Client().Collection(collectionName).Document(visitID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove visit %s from index: %w", visitID, err)
	}
	return nil
}

// Search runs an owner-scoped full-text query over summaries and transcripts
func (a *TypesenseAdapter) Search(ctx context.Context, ownerID, query string, limit int) ([]*repositories.VisitSearchHit, error) {
	params := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("summary,transcript"),
		FilterBy: pointer.String(fmt.Sprintf("owner_user_id:=%s", ownerID)),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search visits: %w", err)
	}

	hits := make([]*repositories.VisitSearchHit, 0)
	if result.Hits == nil {
		return hits, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		h := &repositories.VisitSearchHit{}
		if id, ok := doc["id"].(string); ok {
			h.VisitID = id
		}
		if summary, ok := doc["summary"].(string); ok {
			h.Summary = summary
		}
		if hit.TextMatch != nil {
			h.Score = float64(*hit.TextMatch)
		}
		if hit.Highlights != nil && len(*hit.Highlights) > 0 {
			first := (*hit.Highlights)[0]
			if first.Snippet != nil {
				h.Snippet = *first.Snippet
			}
		}
		hits = append(hits, h)
	}

	return hits, nil
}
