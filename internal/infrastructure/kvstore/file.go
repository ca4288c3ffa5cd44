package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileStore implements Store with one JSON file per key under a data
// directory. This is the default backend: a local, inspectable document
// store with the same durability a browser's local storage offers.
type FileStore struct {
	dir    string
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// path maps a key to its file. Keys are fixed well-known names, but
// separators are rejected anyway so a key can never escape the data
// directory.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", errors.New("invalid document key: " + key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get decodes the document under key into out
func (s *FileStore) Get(ctx context.Context, key string, out any) bool {
	p, err := s.path(key)
	if err != nil {
		s.logger.Warn("rejecting document key", zap.Error(err))
		return false
	}

	s.mu.RLock()
	raw, err := os.ReadFile(p)
	s.mu.RUnlock()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read document", zap.String("key", key), zap.Error(err))
		}
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

// Set writes the document under key. The write goes through a temp file
// and rename so a crash mid-write never leaves a half document behind.
func (s *FileStore) Set(ctx context.Context, key string, value any) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Remove deletes the document under key
func (s *FileStore) Remove(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Has reports whether a document exists under key
func (s *FileStore) Has(ctx context.Context, key string) bool {
	p, err := s.path(key)
	if err != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err = os.Stat(p)
	return err == nil
}

// Clear removes every document in the data directory
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)
