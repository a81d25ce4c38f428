package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Sternrassler/hn-aggregator/pkg/hnclient"
)

// Prometheus metrics for engine operations.
var (
	itemsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_items_dropped_total",
		Help: "Items dropped from a batch by reason",
	}, []string{"reason"}) // "absent", "error"

	fanoutDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hn_fanout_duration_seconds",
		Help:    "Duration of the per-batch item fan-out by operation",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"operation"}) // "page", "search"
)

// ErrInvalidRequest is returned for a non-positive page number or a
// negative page size.
var ErrInvalidRequest = errors.New("invalid request")

// IDSource serves the current story ID ordering.
type IDSource interface {
	GetIDs(ctx context.Context) ([]int64, error)
}

// ItemFetcher resolves a single item by ID. A (nil, nil) return means the
// item is unavailable upstream.
type ItemFetcher interface {
	FetchItem(ctx context.Context, id int64) (*hnclient.Item, error)
}

// Config holds the engine configuration.
type Config struct {
	// SearchScanLimit is the size of the corpus prefix a search scans.
	// Search is bounded, not exhaustive: a full-corpus scan would cost one
	// upstream request per item in the entire feed.
	SearchScanLimit int

	// MaxConcurrency caps the number of in-flight item fetches per batch.
	// Zero means unbounded (one in-flight request per windowed ID).
	MaxConcurrency int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		SearchScanLimit: 500,
		MaxConcurrency:  0,
	}
}

// PageResult is one resolved page: the items that survived the fan-out, in
// ID order, plus a total.
type PageResult struct {
	// Items may be shorter than the requested page size when individual
	// fetches failed or items were absent upstream.
	Items []hnclient.Item `json:"items"`

	// Total is the full corpus size for GetPage, independent of how many
	// item fetches failed. For Search it is the number of matches found
	// within the bounded scan - the two meanings must not be conflated.
	Total int `json:"total"`
}

// Engine is the aggregation engine.
type Engine struct {
	ids     IDSource
	fetcher ItemFetcher
	config  Config
	logger  zerolog.Logger
}

// New creates an engine over the given ID source and item fetcher.
func New(ids IDSource, fetcher ItemFetcher, cfg Config) *Engine {
	if ids == nil {
		panic("id source cannot be nil")
	}
	if fetcher == nil {
		panic("item fetcher cannot be nil")
	}
	if cfg.SearchScanLimit <= 0 {
		cfg.SearchScanLimit = 500
	}
	if cfg.MaxConcurrency < 0 {
		cfg.MaxConcurrency = 0
	}

	return &Engine{
		ids:     ids,
		fetcher: fetcher,
		config:  cfg,
		logger:  log.With().Str("component", "aggregator").Logger(),
	}
}

// GetPage resolves one page of the corpus.
//
// pageNumber is 1-based. pageSize may be zero: the ID list is still fetched
// (warming the cache) and an empty page with the correct Total is returned.
// A window past the end of the corpus yields an empty page, not an error.
// An ID-list failure propagates - returning an empty success would conflate
// "no results" with "upstream is down".
func (e *Engine) GetPage(ctx context.Context, pageSize, pageNumber int) (PageResult, error) {
	if pageSize < 0 || pageNumber < 1 {
		return PageResult{}, fmt.Errorf("%w: page size %d, page number %d",
			ErrInvalidRequest, pageSize, pageNumber)
	}

	ids, err := e.ids.GetIDs(ctx)
	if err != nil {
		return PageResult{}, fmt.Errorf("list story ids: %w", err)
	}

	window := pageWindow(ids, pageSize, pageNumber)
	items := e.fetchAll(ctx, window, "page")

	return PageResult{Items: items, Total: len(ids)}, nil
}

// FetchFront resolves a bounded, recency-biased prefix of the corpus: up to
// SearchScanLimit items, fetched as the first page. Search builds its ad-hoc
// superset from this; it is also useful on its own for feed-style callers.
func (e *Engine) FetchFront(ctx context.Context) (PageResult, error) {
	return e.GetPage(ctx, e.config.SearchScanLimit, 1)
}

// Search scans a bounded, recency-biased prefix of the corpus and returns
// the items whose title contains query as a case-insensitive substring.
// Items without a title never match. Matches keep scan order; Total is the
// match count within the scan, NOT the corpus size. Results are not
// re-paginated server-side - callers slice locally for display.
func (e *Engine) Search(ctx context.Context, query string) (PageResult, error) {
	page, err := e.FetchFront(ctx)
	if err != nil {
		return PageResult{}, err
	}

	needle := strings.ToLower(query)
	matches := make([]hnclient.Item, 0)
	for _, item := range page.Items {
		if item.Title == "" {
			continue
		}
		if strings.Contains(strings.ToLower(item.Title), needle) {
			matches = append(matches, item)
		}
	}

	e.logger.Debug().
		Str("query", query).
		Int("scanned", len(page.Items)).
		Int("matches", len(matches)).
		Msg("Search complete")

	return PageResult{Items: matches, Total: len(matches)}, nil
}

// pageWindow selects the zero-based slice of ids for a 1-based page,
// clipped to the available length.
func pageWindow(ids []int64, pageSize, pageNumber int) []int64 {
	skip := (pageNumber - 1) * pageSize
	if pageSize == 0 || skip >= len(ids) {
		return nil
	}

	end := skip + pageSize
	if end > len(ids) {
		end = len(ids)
	}

	return ids[skip:end]
}

// fetchAll resolves every ID in the window concurrently and joins on the
// whole batch. Absent and failed items are dropped; survivors come back in
// window order. One slow fetch delays only the join, never another item.
func (e *Engine) fetchAll(ctx context.Context, ids []int64, operation string) []hnclient.Item {
	if len(ids) == 0 {
		return []hnclient.Item{}
	}

	start := time.Now()
	defer func() {
		fanoutDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	// Results land in their dispatch slot so the original ID order survives
	// concurrent completion.
	resolved := make([]*hnclient.Item, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	if e.config.MaxConcurrency > 0 {
		g.SetLimit(e.config.MaxConcurrency)
	}

	for i, id := range ids {
		g.Go(func() error {
			item, err := e.fetcher.FetchItem(gctx, id)
			if err != nil {
				itemsDroppedTotal.WithLabelValues("error").Inc()
				e.logger.Warn().Err(err).Int64("id", id).Msg("Item fetch failed, dropping")
				return nil
			}
			if item == nil {
				itemsDroppedTotal.WithLabelValues("absent").Inc()
				e.logger.Debug().Int64("id", id).Msg("Item absent upstream, dropping")
				return nil
			}
			resolved[i] = item
			return nil
		})
	}

	// Workers swallow their own failures; Wait is purely the join barrier.
	_ = g.Wait()

	items := make([]hnclient.Item, 0, len(ids))
	for _, item := range resolved {
		if item != nil {
			items = append(items, *item)
		}
	}

	e.logger.Debug().
		Str("operation", operation).
		Int("requested", len(ids)).
		Int("resolved", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Fan-out complete")

	return items
}
