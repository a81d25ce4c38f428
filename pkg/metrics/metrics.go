// Package metrics provides the centralized Prometheus metrics registry for
// the aggregation service. All metrics are defined in their respective
// packages (hnclient, idcache, aggregator) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the service.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Upstream Request Metrics (pkg/hnclient):
//   - hn_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - hn_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - hn_errors_total{class} (Counter): Errors by class (unavailable, malformed)
//
// ID Cache Metrics (pkg/idcache):
//   - hn_idcache_hits_total{store} (Counter): Cache hits by store backend
//   - hn_idcache_misses_total (Counter): Cache misses (empty or expired entry)
//   - hn_idcache_errors_total{operation} (Counter): Store operation errors
//   - hn_idcache_ids (Gauge): Size of the currently cached ID sequence
//
// Engine Metrics (pkg/aggregator):
//   - hn_items_dropped_total{reason} (Counter): Items dropped from a batch (absent, error)
//   - hn_fanout_duration_seconds{operation} (Histogram): Batch fan-out duration (page, search)
