package propstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"game-sync/core/transport"

	"go.uber.org/zap"
)

// DefaultPageSize is the store's fixed listing page size. It is an external
// constraint of the query endpoint, not a tunable of this client.
const DefaultPageSize = 100

// Sort is one ordering clause of a database query.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// Query describes one database query request.
type Query struct {
	// Filter is the store's native filter object; nil queries everything.
	Filter map[string]any
	// Sorts orders the results; nil leaves store order.
	Sorts []Sort
	// StartCursor resumes a paginated listing; empty starts from the top.
	StartCursor string
	// PageSize limits the page; zero uses DefaultPageSize.
	PageSize int
}

// Store is the interface the sync engine consumes. Satisfied by *Client.
type Store interface {
	// QueryPage fetches one page of a database listing.
	QueryPage(ctx context.Context, databaseID string, q Query) (*Page, error)
	// CreatePage creates a page under the given database and returns its id.
	CreatePage(ctx context.Context, databaseID string, props Properties, media *Media) (string, error)
	// PatchPage updates properties of an existing page.
	PatchPage(ctx context.Context, pageID string, props Properties) error
}

// Client talks to the property store's HTTP API through the shared transport.
type Client struct {
	tp  *transport.Client
	cfg Config
	log *zap.Logger
}

// NewClient creates a property store client.
func NewClient(cfg Config, tp *transport.Client, log *zap.Logger) *Client {
	return &Client{tp: tp, cfg: cfg, log: log}
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization":  "Bearer " + c.cfg.Token,
		"Notion-Version": c.cfg.Version,
		"Content-Type":   "application/json",
	}
}

// QueryPage fetches one page of a database listing.
func (c *Client) QueryPage(ctx context.Context, databaseID string, q Query) (*Page, error) {
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	body := map[string]any{"page_size": size}
	if q.Filter != nil {
		body["filter"] = q.Filter
	}
	if len(q.Sorts) > 0 {
		body["sorts"] = q.Sorts
	}
	if q.StartCursor != "" {
		body["start_cursor"] = q.StartCursor
	}

	url := fmt.Sprintf("%s/v1/databases/%s/query", c.cfg.BaseURL, databaseID)
	data, err := c.tp.Do(ctx, http.MethodPost, url, c.headers(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to query database %s: %w", databaseID, err)
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return &page, nil
}

// CreatePage creates a page under the given database and returns its id.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties, media *Media) (string, error) {
	body := map[string]any{
		"parent": map[string]any{
			"type":        "database_id",
			"database_id": databaseID,
		},
		"properties": props,
	}
	if media != nil {
		if media.CoverURL != "" {
			body["cover"] = map[string]any{
				"type":     "external",
				"external": map[string]any{"url": media.CoverURL},
			}
		}
		switch {
		case media.IconEmoji != "":
			body["icon"] = map[string]any{"type": "emoji", "emoji": media.IconEmoji}
		case media.IconURL != "":
			body["icon"] = map[string]any{
				"type":     "external",
				"external": map[string]any{"url": media.IconURL},
			}
		}
	}

	data, err := c.tp.Do(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/pages", c.headers(), body)
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	return created.ID, nil
}

// PatchPage updates properties of an existing page.
func (c *Client) PatchPage(ctx context.Context, pageID string, props Properties) error {
	url := fmt.Sprintf("%s/v1/pages/%s", c.cfg.BaseURL, pageID)
	body := map[string]any{"properties": props}

	if _, err := c.tp.Do(ctx, http.MethodPatch, url, c.headers(), body); err != nil {
		return fmt.Errorf("failed to patch page %s: %w", pageID, err)
	}
	return nil
}
