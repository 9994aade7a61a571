package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	cacheport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is a process-local JSON cache with expiry, used when redis is disabled.
// Values are encoded like RedisStore so callers never share pointers with the cache.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   coreport.TimeProvider
	logger  coreport.Logger
}

var _ cacheport.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore(clock coreport.TimeProvider, logger coreport.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		clock:   clock,
		logger:  logger,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest any) bool {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	if entry.expired(s.clock.Now()) {
		s.dropExpired(key)
		return false
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		s.logger.Warn("Cache entry could not be decoded", map[string]any{"key": key, "error": err.Error()})
		return false
	}
	return true
}

// dropExpired deletes key only if the entry stored now is still expired,
// so a Set that landed after the read survives
func (s *MemoryStore) dropExpired(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok && entry.expired(s.clock.Now()) {
		delete(s.entries, key)
	}
}

// Set stores value under key. A non-positive ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Cache entry could not be encoded", map[string]any{"key": key, "error": err.Error()})
		return
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = s.clock.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
}

func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

// Len returns the number of stored entries, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
