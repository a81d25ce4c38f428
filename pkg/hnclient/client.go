// Package hnclient provides the Hacker News API client used by the
// aggregation engine: listing the current story IDs and fetching single
// items. Calls are single-attempt by contract - no retries, no backoff.
package hnclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for upstream operations.
var (
	hnRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_requests_total",
		Help: "Total Hacker News requests by endpoint and status",
	}, []string{"endpoint", "status"})

	hnRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hn_request_duration_seconds",
		Help:    "Hacker News request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	hnErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_errors_total",
		Help: "Total Hacker News errors by class",
	}, []string{"class"})
)

// Error classes for the hn_errors_total metric.
const (
	errorClassUnavailable = "unavailable"
	errorClassMalformed   = "malformed"
)

// Upstream endpoint paths. The item path is templated so metric label
// cardinality stays bounded.
const (
	newStoriesPath = "/v0/newstories.json"
	itemPathLabel  = "/v0/item/{id}.json"
)

// Client is the Hacker News API client.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the Hacker News API, without trailing slash.
	BaseURL string

	// User-Agent header sent with every request.
	UserAgent string

	// Timeout per upstream call. A single slow item fetch delays only its
	// own slot in a batch, never the others.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://hacker-news.firebaseio.com",
		UserAgent: "hn-aggregator/0.1.0",
		Timeout:   10 * time.Second,
	}
}

// New creates a new Hacker News client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	logger := log.With().Str("component", "hn-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// ListIDs fetches the full ordered sequence of current story IDs.
// The upstream ordering is newest-first and is preserved verbatim.
// An empty array is a valid response, not an error.
func (c *Client) ListIDs(ctx context.Context) ([]int64, error) {
	body, status, err := c.get(ctx, newStoriesPath, newStoriesPath)
	if err != nil {
		hnErrorsTotal.WithLabelValues(errorClassUnavailable).Inc()
		c.logger.Error().Err(err).Str("endpoint", newStoriesPath).Msg("List IDs request failed")
		return nil, &UpstreamError{
			Endpoint: newStoriesPath,
			Err:      fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err),
		}
	}

	if status != http.StatusOK {
		hnErrorsTotal.WithLabelValues(errorClassUnavailable).Inc()
		c.logger.Warn().
			Str("endpoint", newStoriesPath).
			Int("status", status).
			Msg("List IDs returned non-success status")
		return nil, &UpstreamError{
			Endpoint:   newStoriesPath,
			StatusCode: status,
			Err:        ErrUpstreamUnavailable,
		}
	}

	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		hnErrorsTotal.WithLabelValues(errorClassMalformed).Inc()
		c.logger.Warn().Err(err).Str("endpoint", newStoriesPath).Msg("List IDs body unparseable")
		return nil, &UpstreamError{
			Endpoint:   newStoriesPath,
			StatusCode: status,
			Err:        fmt.Errorf("%w: %v", ErrMalformedResponse, err),
		}
	}

	if ids == nil {
		ids = []int64{}
	}

	c.logger.Debug().Int("count", len(ids)).Msg("Fetched story IDs")
	return ids, nil
}

// FetchItem fetches a single item by ID. A non-success status or a JSON
// "null" body means the item is unavailable upstream and yields (nil, nil);
// absence is an expected outcome, not an error. Only an unparseable success
// body is reported as ErrMalformedResponse.
func (c *Client) FetchItem(ctx context.Context, id int64) (*Item, error) {
	path := fmt.Sprintf("/v0/item/%d.json", id)

	body, status, err := c.get(ctx, path, itemPathLabel)
	if err != nil {
		hnErrorsTotal.WithLabelValues(errorClassUnavailable).Inc()
		return nil, &UpstreamError{
			Endpoint: path,
			Err:      fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err),
		}
	}

	if status != http.StatusOK {
		c.logger.Debug().
			Int64("id", id).
			Int("status", status).
			Msg("Item unavailable upstream")
		return nil, nil
	}

	// The API reports unknown or deleted IDs as a 200 with a "null" body;
	// decoding into a pointer leaves it nil in that case.
	var item *Item
	if err := json.Unmarshal(body, &item); err != nil {
		hnErrorsTotal.WithLabelValues(errorClassMalformed).Inc()
		c.logger.Warn().Err(err).Int64("id", id).Msg("Item body unparseable")
		return nil, &UpstreamError{
			Endpoint:   path,
			StatusCode: status,
			Err:        fmt.Errorf("%w: %v", ErrMalformedResponse, err),
		}
	}

	return item, nil
}

// get performs a single GET against the upstream API and returns the body
// and status. endpointLabel is the templated path used for metrics.
func (c *Client) get(ctx context.Context, path, endpointLabel string) ([]byte, int, error) {
	start := time.Now()
	defer func() {
		hnRequestDuration.WithLabelValues(endpointLabel).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		hnRequestsTotal.WithLabelValues(endpointLabel, "network_error").Inc()
		return nil, 0, err
	}
	defer resp.Body.Close()

	hnRequestsTotal.WithLabelValues(endpointLabel, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
