// Package aggregator combines the ID cache and the Hacker News client into
// the three engine operations: paginated fetch, bounded front-of-corpus
// fetch, and search.
//
// Each operation selects a window of the cached ID ordering and resolves it
// with one concurrent item fetch per ID, joining on the slowest fetch.
// Individual item failures shrink the batch instead of failing it; only an
// ID-list failure - without which no page can be computed - propagates.
//
// Example usage:
//
//	engine := aggregator.New(cache, client, aggregator.DefaultConfig())
//	page, err := engine.GetPage(ctx, 10, 1)
//	matches, err := engine.Search(ctx, "rust")
//
// The engine:
//   - Preserves the upstream ID order in returned items
//   - Reports the full corpus size as Total on paginated fetches
//   - Bounds search to a fixed-size recency-biased prefix of the corpus
package aggregator
