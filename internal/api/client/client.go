// Package client provides a thin HTTP client for the donutsmp-bot ops API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/donaldgifford/donutsmp-bot/internal/api/handlers"
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("not found")

// Client is a thin HTTP client for the donutsmp-bot ops API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// SearchResponse mirrors the body of POST /api/v1/search.
type SearchResponse struct {
	SearchID  string                 `json:"search_id"`
	Term      string                 `json:"term"`
	Total     int                    `json:"total"`
	Truncated bool                   `json:"truncated"`
	CreatedAt time.Time              `json:"created_at"`
	Listings  []handlers.ListingView `json:"listings"`
}

// PriceResponse mirrors the body of GET /api/v1/price.
type PriceResponse struct {
	Term    string               `json:"term"`
	Listing handlers.ListingView `json:"listing"`
}

// Search asks the server to scan the auction house for term.
func (c *Client) Search(ctx context.Context, term string) (*SearchResponse, error) {
	var resp SearchResponse
	body := map[string]string{"term": term}
	if err := c.post(ctx, "/api/v1/search", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Price asks the server for the cheapest listing matching term. It returns
// ErrNotFound when nothing matched.
func (c *Client) Price(ctx context.Context, term string) (*PriceResponse, error) {
	var resp PriceResponse
	path := "/api/v1/price?" + url.Values{"term": {term}}.Encode()
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

func (c *Client) post(ctx context.Context, path string, body, dst any) error {
	return c.do(ctx, http.MethodPost, path, body, dst)
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return fmt.Errorf("API server not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSpace(string(respBody)))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	if dst != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
