package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/crcresearch/padcheck/internal/pad"
)

// Client queries the PAD analytics REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a Client for the given API host, e.g. "https://pad.crc.nd.edu".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListProjects(ctx context.Context) ([]pad.Record, error) {
	return c.getRecords(ctx, "/api/v2/projects")
}

func (c *Client) ProjectCards(ctx context.Context, project string) ([]pad.Record, error) {
	return c.getRecords(ctx, "/api/v2/projects/"+url.PathEscape(project)+"/cards")
}

func (c *Client) CardByID(ctx context.Context, id int) (pad.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v2/cards/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call pad api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pad api returned status %d", resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// A card fetch may come back as a bare object or a one-element array.
	var rec pad.Record
	if err := json.Unmarshal(body, &rec); err == nil {
		return rec, nil
	}
	var recs []pad.Record
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("unexpected card payload: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// getRecords fetches path and decodes the row list. The API serves both bare
// arrays and {"data": [...]} envelopes depending on version.
func (c *Client) getRecords(ctx context.Context, path string) ([]pad.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call pad api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pad api returned status %d", resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var recs []pad.Record
	if err := json.Unmarshal(body, &recs); err == nil {
		return recs, nil
	}

	var envelope struct {
		Data []pad.Record `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected row payload: %w", err)
	}
	return envelope.Data, nil
}
