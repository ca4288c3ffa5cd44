package kvstore

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Backend names accepted by the factory
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// FactoryConfig selects and parameterizes a store backend
type FactoryConfig struct {
	Backend    string // memory, file, sqlite, redis
	Dir        string // file backend: data directory
	SQLitePath string // sqlite backend: database file
	Redis      RedisConfig
}

// New creates the configured store backend. An unset backend defaults
// to the file store.
func New(cfg FactoryConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory:
		return NewMemoryStore(logger), nil
	case BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			dir = "data"
		}
		return NewFileStore(dir, logger)
	case BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "storefront.db"
		}
		return NewSQLiteStore(path, logger)
	case BackendRedis:
		return NewRedisStore(cfg.Redis, logger)
	default:
		return nil, fmt.Errorf("unknown kvstore backend: %q", cfg.Backend)
	}
}
