// Package statistics provides adapters for the public statistics
// services: budget execution figures per fiscal entity and yearly
// housing observations per territorial sub-code.
package statistics

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

// Ensure Client implements both interfaces.
var (
	_ driven.TaxSource     = (*Client)(nil)
	_ driven.HousingSource = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = "https://statistici.fiscal.example"
	DefaultTimeout = 30 * time.Second

	// DefaultRate throttles statistics queries (~2 req/sec).
	DefaultRate = 2.0

	// DefaultDataset is the housing-units dataset identifier.
	DefaultDataset = "LOC103B"
)

// Config holds configuration for the statistics client.
type Config struct {
	// BaseURL is the statistics API base URL.
	BaseURL string

	// Dataset is the housing dataset identifier (default: LOC103B).
	Dataset string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// Rate is the maximum request rate in requests per second.
	Rate float64
}

// Client fetches budget execution and housing figures over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	dataset string
	limiter *rate.Limiter
}

// revenueRow is one budget execution row. Amounts arrive as decimal
// strings; an unparseable amount is treated as zero rather than
// failing the whole year.
type revenueRow struct {
	Code   string `json:"cod"`
	Amount string `json:"suma"`
}

// housingRow is one yearly housing observation.
type housingRow struct {
	Year      string `json:"an"`
	Value     string `json:"valoare"`
	Territory string `json:"teritoriu"`
}

// NewClient creates a new statistics client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
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
		dataset: cfg.Dataset,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), 1),
	}
}

// Revenue returns the budget execution rows for one entity and year.
func (c *Client) Revenue(ctx context.Context, taxID string, year int) ([]domain.RevenueRow, error) {
	params := url.Values{}
	params.Set("cui", taxID)
	params.Set("an", strconv.Itoa(year))

	var rows []revenueRow
	if err := c.getJSON(ctx, "/api/bugete?"+params.Encode(), &rows); err != nil {
		return nil, err
	}

	result := make([]domain.RevenueRow, 0, len(rows))
	for _, row := range rows {
		amount, err := strconv.ParseFloat(row.Amount, 64)
		if err != nil {
			amount = 0
		}
		result = append(result, domain.RevenueRow{
			Code:   row.Code,
			Amount: amount,
		})
	}

	return result, nil
}

// Observations returns all yearly housing observations for one
// territorial sub-code. Rows without a parseable year are dropped;
// unparseable values count as zero.
func (c *Client) Observations(ctx context.Context, subCode string) ([]domain.HousingObservation, error) {
	params := url.Values{}
	params.Set("siruta", subCode)

	var rows []housingRow
	if err := c.getJSON(ctx, "/api/statistici/"+url.PathEscape(c.dataset)+"?"+params.Encode(), &rows); err != nil {
		return nil, err
	}

	result := make([]domain.HousingObservation, 0, len(rows))
	for _, row := range rows {
		year, err := strconv.Atoi(row.Year)
		if err != nil {
			continue
		}
		value, err := strconv.Atoi(row.Value)
		if err != nil {
			value = 0
		}
		result = append(result, domain.HousingObservation{
			Year:      year,
			Value:     value,
			Territory: row.Territory,
		})
	}

	return result, nil
}

// getJSON performs a throttled GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("statistics error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("statistics error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Close releases resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
