package kvstore

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore implements Store with an in-process map. It backs tests
// and single-shot tooling; nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	logger *zap.Logger
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		docs:   make(map[string][]byte),
		logger: logger,
	}
}

// Get decodes the document under key into out
func (s *MemoryStore) Get(ctx context.Context, key string, out any) bool {
	s.mu.RLock()
	raw, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("discarding unreadable document",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

// Set writes the document under key
func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[key] = raw
	s.mu.Unlock()
	return nil
}

// Remove deletes the document under key
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.docs, key)
	s.mu.Unlock()
	return nil
}

// Has reports whether a document exists under key
func (s *MemoryStore) Has(ctx context.Context, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[key]
	return ok
}

// Clear removes every document
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.docs = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

// SetRaw stores a pre-encoded document verbatim. Tests use it to plant
// corrupted JSON and exercise the fallback path.
func (s *MemoryStore) SetRaw(key string, raw []byte) {
	s.mu.Lock()
	s.docs[key] = raw
	s.mu.Unlock()
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
