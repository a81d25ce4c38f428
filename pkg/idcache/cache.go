package idcache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrCacheMiss indicates the store holds no usable entry.
var ErrCacheMiss = errors.New("cache miss")

// Store is the backend holding the single cache entry.
type Store interface {
	// Name identifies the backend ("memory", "redis") for logs and metrics.
	Name() string

	// Get returns the current entry or ErrCacheMiss.
	Get(ctx context.Context) (*Entry, error)

	// Set replaces the current entry.
	Set(ctx context.Context, entry *Entry) error
}

// Lister is the upstream operation the cache refreshes from.
type Lister interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// Cache serves the current story ID ordering, refreshing from the upstream
// at most once per TTL window per caller.
type Cache struct {
	store  Store
	lister Lister
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a cache over the given store and upstream lister.
// A non-positive ttl falls back to DefaultTTL.
func New(store Store, lister Lister, ttl time.Duration) *Cache {
	if store == nil {
		panic("store cannot be nil")
	}
	if lister == nil {
		panic("lister cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		store:  store,
		lister: lister,
		ttl:    ttl,
		logger: log.With().Str("component", "id-cache").Logger(),
	}
}

// GetIDs returns the current ID ordering.
//
// A fresh entry is returned directly with no upstream call. On a miss or an
// expired entry the upstream list call runs; a non-empty result is stored
// with a fresh timestamp, an empty result is returned but not cached (a
// transient empty response must not occupy the window). List failure
// propagates unchanged - no page can be computed without the ordering.
//
// Store failures never fail the request: a broken read degrades to a
// refetch, a broken write to an uncached (but still correct) response.
//
// Concurrent callers that miss simultaneously each trigger their own
// upstream call; the last writer wins.
func (c *Cache) GetIDs(ctx context.Context) ([]int64, error) {
	entry, err := c.store.Get(ctx)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		CacheErrors.WithLabelValues("get").Inc()
		c.logger.Warn().Err(err).Str("store", c.store.Name()).Msg("Cache read failed, refetching")
	}

	if err == nil && !entry.IsExpired(c.ttl) {
		CacheHits.WithLabelValues(c.store.Name()).Inc()
		c.logger.Debug().
			Int("count", len(entry.IDs)).
			Dur("age", entry.Age()).
			Msg("Serving IDs from cache")
		return entry.IDs, nil
	}

	CacheMisses.Inc()

	ids, err := c.lister.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		fresh := &Entry{IDs: ids, FetchedAt: time.Now()}
		if err := c.store.Set(ctx, fresh); err != nil {
			CacheErrors.WithLabelValues("set").Inc()
			c.logger.Warn().Err(err).Str("store", c.store.Name()).Msg("Cache write failed")
		} else {
			CachedIDs.Set(float64(len(ids)))
			c.logger.Debug().Int("count", len(ids)).Msg("Cached fresh ID sequence")
		}
	}

	return ids, nil
}

// TTL returns the configured validity window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}
