package cachestore

import (
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded in-process Store used by tests and as a
// fallback when no bolt file is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	e := entry{Value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if e.expired(time.Now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}
	// non-nil even for zero-length values; nil means absent
	out := make([]byte, len(e.Value))
	copy(out, e.Value)
	return out, nil
}

func (s *MemoryStore) Exists(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
