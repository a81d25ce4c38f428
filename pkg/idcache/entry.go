package idcache

import (
	"time"
)

// DefaultTTL is the validity window for a cached ID sequence.
const DefaultTTL = 5 * time.Minute

// Entry is the single cache value: the full ordered ID sequence as of the
// last successful upstream list call, plus the timestamp of that call.
type Entry struct {
	// IDs is the upstream ID ordering, newest first, preserved verbatim.
	IDs []int64 `json:"ids"`

	// FetchedAt is when the sequence was fetched.
	FetchedAt time.Time `json:"fetched_at"`
}

// Age returns how long ago the entry was fetched.
func (e *Entry) Age() time.Duration {
	return time.Since(e.FetchedAt)
}

// IsExpired returns true once the entry's age exceeds ttl.
func (e *Entry) IsExpired(ttl time.Duration) bool {
	return e.Age() > ttl
}
