package idcache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks ID cache hits by store backend.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hn_idcache_hits_total",
			Help: "Total number of ID cache hits",
		},
		[]string{"store"}, // "memory", "redis"
	)

	// CacheMisses tracks ID cache misses (empty slot or expired entry).
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hn_idcache_misses_total",
			Help: "Total number of ID cache misses",
		},
	)

	// CacheErrors tracks store operation errors by operation.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hn_idcache_errors_total",
			Help: "Total number of ID cache store errors",
		},
		[]string{"operation"}, // "get", "set"
	)

	// CachedIDs tracks the size of the currently cached ID sequence.
	CachedIDs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hn_idcache_ids",
			Help: "Number of story IDs in the current cache entry",
		},
	)
)
