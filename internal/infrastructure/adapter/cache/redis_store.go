package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	cacheport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// scanBatch is the COUNT hint for SCAN and the DEL batch size
const scanBatch = 100

// RedisStore is a JSON cache on redis. Every failure is logged and contained.
type RedisStore struct {
	client redis.Cmdable
	logger coreport.Logger
}

var _ cacheport.Store = (*RedisStore)(nil)

// NewRedisStore creates a store backed by client
func NewRedisStore(client redis.Cmdable, logger coreport.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// Get decodes the value under key into dest. Connection and decode failures are misses.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		s.logger.Warn("Cache read failed", map[string]any{"key": key, "error": err.Error()})
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("Cache entry could not be decoded, evicting", map[string]any{"key": key, "error": err.Error()})
		s.Delete(ctx, key)
		return false
	}
	return true
}

// Set stores the JSON encoding of value under key for ttl
func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Cache entry could not be encoded", map[string]any{"key": key, "error": err.Error()})
		return
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.Warn("Cache write failed", map[string]any{"key": key, "error": err.Error()})
	}
}

// Delete evicts keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("Cache eviction failed", map[string]any{"keys": keys, "error": err.Error()})
	}
}

// DeletePrefix evicts every key under prefix with SCAN and batched DEL
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) {
	iter := s.client.Scan(ctx, 0, globEscaper.Replace(prefix)+"*", scanBatch).Iterator()

	batch := make([]string, 0, scanBatch)
	evicted := 0
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			s.Delete(ctx, batch...)
			evicted += len(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		s.Delete(ctx, batch...)
		evicted += len(batch)
	}

	if err := iter.Err(); err != nil {
		s.logger.Warn("Cache namespace eviction failed", map[string]any{"prefix": prefix, "error": err.Error()})
		return
	}
	s.logger.Debug("Cache namespace evicted", map[string]any{"prefix": prefix, "keys": evicted})
}

// Ping reports whether redis answers
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
