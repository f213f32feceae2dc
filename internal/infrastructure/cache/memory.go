package cache

import (
	"context"
	"sync"
	"time"

	"github.com/softencymsc/webbill-api/internal/domain/entity"
)

type memoryEntry struct {
	value     entity.PendingAuthorization
	expiresAt time.Time
}

// MemoryStore is an in-process PendingStore used for single-node deployments
// and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(ctx context.Context, key string, value entity.PendingAuthorization, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*entity.PendingAuthorization, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false, nil
	}

	value := entry.value
	return &value, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
