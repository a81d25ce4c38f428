package idcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_EmptyIsMiss(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background())
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	entry := &Entry{IDs: []int64{3, 2, 1}, FetchedAt: time.Now()}
	if err := store.Set(ctx, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != entry {
		t.Error("Get should return the stored entry")
	}
}

func TestMemoryStore_LastWriterWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &Entry{IDs: []int64{1}, FetchedAt: time.Now()}
	second := &Entry{IDs: []int64{2}, FetchedAt: time.Now()}

	store.Set(ctx, first)
	store.Set(ctx, second)

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != second {
		t.Error("Get should return the most recent entry")
	}
}

// Concurrent writers must never produce a torn read: whatever Get returns
// is exactly one of the written entries.
func TestMemoryStore_ConcurrentSwap(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			store.Set(ctx, &Entry{IDs: []int64{n}, FetchedAt: time.Now()})
		}(int64(i))
	}
	wg.Wait()

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.IDs) != 1 {
		t.Errorf("Entry torn: IDs = %v", got.IDs)
	}
	if got.FetchedAt.IsZero() {
		t.Error("Entry torn: zero timestamp")
	}
}
