// Package idcache holds the most recently fetched story ID ordering for a
// fixed time window, amortizing the cost of the upstream list call across
// many paginated and search requests.
//
// The cache holds exactly one entry at a time: the full ordered ID sequence
// plus the timestamp of the fetch that produced it. Two Store backends are
// provided - an in-process atomic slot (the default) and a Redis-backed
// store for deployments that share the window across instances.
//
// Example usage:
//
//	cache := idcache.New(idcache.NewMemoryStore(), upstream, 5*time.Minute)
//	ids, err := cache.GetIDs(ctx)
//
// Refresh is not deduplicated: concurrent callers that miss simultaneously
// each trigger their own upstream call and the last writer wins. This is an
// accepted simplification, not single-flight coordination.
package idcache
