package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/repowise/waitlist-api/internal/models"
	"gorm.io/gorm"
)

// GormStore keeps each document in a row of the documents table. Saves are
// guarded by a monotonic version column: an UPDATE constrained on the loaded
// version affects zero rows when a concurrent writer got there first.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context, key string) ([]byte, int64, error) {
	var doc models.Document

	if err := s.db.WithContext(ctx).First(&doc, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("docstore: load %q: %w", key, err)
	}

	return doc.Body, doc.Version, nil
}

func (s *GormStore) Save(ctx context.Context, key string, data []byte, expectedVersion int64) error {
	if expectedVersion == 0 {
		doc := models.Document{Key: key, Body: data, Version: 1}
		if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
			if isDuplicateKey(err) {
				// Someone created the document between our load and save.
				return ErrVersionConflict
			}
			return fmt.Errorf("docstore: create %q: %w", key, err)
		}
		return nil
	}

	result := s.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("key = ? AND version = ?", key, expectedVersion).
		Updates(map[string]interface{}{
			"body":    data,
			"version": expectedVersion + 1,
		})

	if result.Error != nil {
		return fmt.Errorf("docstore: save %q: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
