package idcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKey is the single fixed cache key. There is exactly one entry at a
// time; no per-page or per-query caching of resolved items exists.
const redisKey = "hn:newstories:ids"

// RedisStore keeps the single cache entry in Redis, letting multiple
// service instances share one refresh window. Entries are JSON-marshalled
// and stored with a TTL so stale windows are garbage-collected server-side.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a Redis-backed store. ttl bounds how long Redis
// keeps an entry; the Cache additionally checks entry age on read.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Name identifies the backend in logs and metrics.
func (s *RedisStore) Name() string {
	return "redis"
}

// Get retrieves the current entry.
// Returns ErrCacheMiss if the key doesn't exist or the stored value does
// not decode as an Entry - an undecodable value is treated as a miss and
// deleted rather than surfaced, so cache corruption can only cost a refetch.
func (s *RedisStore) Get(ctx context.Context) (*Entry, error) {
	data, err := s.redis.Get(ctx, redisKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = s.redis.Del(ctx, redisKey).Err()
		return nil, ErrCacheMiss
	}

	return &entry, nil
}

// Set stores the entry with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := s.redis.Set(ctx, redisKey, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}
