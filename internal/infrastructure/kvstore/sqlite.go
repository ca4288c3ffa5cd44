package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// document is the single-table schema of the SQLite backend
type document struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value;type:text"`
	UpdatedAt time.Time
}

// TableName sets the documents table name
func (document) TableName() string {
	return "documents"
}

// SQLiteStore implements Store on a single SQLite file via GORM. It
// trades the file backend's one-file-per-key layout for a single
// durable database file.
type SQLiteStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) the database at path and migrates
// the documents table
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Get decodes the document under key into out
func (s *SQLiteStore) Get(ctx context.Context, key string, out any) bool {
	var doc document
	err := s.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("failed to read document", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(doc.Value), out); err != nil {
		s.logger.Warn("discarding unreadable document",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	return true
}

// Set writes the document under key, inserting or replacing
func (s *SQLiteStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	doc := document{Key: key, Value: string(raw), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&doc).Error
}

// Remove deletes the document under key
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&document{}, "key = ?", key).Error
}

// Has reports whether a document exists under key
func (s *SQLiteStore) Has(ctx context.Context, key string) bool {
	var count int64
	if err := s.db.WithContext(ctx).Model(&document{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// Clear removes every document
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&document{}).Error
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
