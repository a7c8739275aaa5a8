package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/medvoice/scribe-backend/pkg/config"
)

// Client wraps the Firestore document store client.
type Client struct {
	client *firestore.Client
}

// NewClient creates a new Firestore client for the configured project.
func NewClient(ctx context.Context, cfg *config.FirestoreConfig) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &Client{client: client}, nil
}

// Client returns the underlying Firestore client
func (c *Client) Client() *firestore.Client {
	return c.client
}

// Close closes the Firestore connection
func (c *Client) Close() error {
	return c.client.Close()
}
