// Package registry provides an entity search adapter backed by the
// public fiscal entity registry's full-text search endpoint.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.EntitySearch = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://registru.fiscal.example"
	DefaultTimeout = 30 * time.Second

	// DefaultRate throttles registry queries (~2 req/sec). The registry
	// has no documented quota; stay well under anything plausible.
	DefaultRate = 2.0
)

// Config holds configuration for the registry client.
type Config struct {
	// BaseURL is the registry API base URL.
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// Rate is the maximum request rate in requests per second.
	Rate float64
}

// Client searches the fiscal entity registry over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// searchResponse is the registry API response format.
type searchResponse struct {
	Found int          `json:"found"`
	Items []entityItem `json:"items"`
}

// entityItem is one registry hit. Field names follow the registry's
// Romanian schema.
type entityItem struct {
	Name     string `json:"denumire"`
	TaxID    string `json:"cui"`
	Region   string `json:"judet"`
	Locality string `json:"localitate"`
	SubCode  string `json:"siruta"`
}

// NewClient creates a new registry search client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Rate == 0 {
		cfg.Rate = DefaultRate
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), 1),
	}
}

// Search runs one free-text query against the registry and returns at
// most limit candidates in registry relevance order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.CandidateEntity, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/api/entitati?"+params.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("registry error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("registry error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]domain.CandidateEntity, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		candidates = append(candidates, domain.CandidateEntity{
			DisplayName:  item.Name,
			TaxID:        item.TaxID,
			Region:       item.Region,
			LocalityName: item.Locality,
			SubCode:      item.SubCode,
		})
	}

	return candidates, nil
}

// Close releases resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
