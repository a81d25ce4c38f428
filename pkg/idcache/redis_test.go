package idcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client. Integration coverage with a
// real container lives in tests/integration.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewRedisStore_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewRedisStore should panic with nil redis client")
		}
	}()
	NewRedisStore(nil, time.Minute)
}

func TestRedisStore_EmptyIsMiss(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)

	_, err := store.Get(context.Background())
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisStore_SetGet(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	fetchedAt := time.Now().Truncate(time.Second)
	entry := &Entry{IDs: []int64{5, 4, 3}, FetchedAt: fetchedAt}
	if err := store.Set(ctx, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.IDs) != 3 || got.IDs[0] != 5 || got.IDs[2] != 3 {
		t.Errorf("IDs = %v, want [5 4 3]", got.IDs)
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, fetchedAt)
	}
}

func TestRedisStore_SetNil(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)

	if err := store.Set(context.Background(), nil); err == nil {
		t.Error("Set(nil) should fail")
	}
}

func TestRedisStore_CorruptValueIsMiss(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	// Plant a value the store cannot decode.
	if err := client.Set(ctx, redisKey, "not json at all", time.Minute).Err(); err != nil {
		t.Fatalf("Failed to plant corrupt value: %v", err)
	}

	_, err := store.Get(ctx)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Corrupt value should read as a miss, got %v", err)
	}

	// The corrupt key must be gone so the next refresh can take the slot.
	if err := client.Get(ctx, redisKey).Err(); err != redis.Nil {
		t.Errorf("Corrupt key should be deleted, got %v", err)
	}
}

func TestRedisStore_TTLApplied(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	entry := &Entry{IDs: []int64{1}, FetchedAt: time.Now()}
	if err := store.Set(ctx, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	ttl, err := client.TTL(ctx, redisKey).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want (0, 1m]", ttl)
	}
}
