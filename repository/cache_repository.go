package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/phdonas/site/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheRepository is the persisted key-value store backing the versioned
// content snapshots. Values are whole JSON-serialized arrays replaced
// atomically as one write; there is no per-item read-modify-write.
type CacheRepository interface {
	Get(key string) (string, bool, error)
	Put(key string, value string) error
	Delete(keys ...string) error
}

type cacheRepository struct {
	db *gorm.DB
}

// NewCacheRepository creates a new instance of CacheRepository.
func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepository{db: db}
}

// Get returns the stored value for key. A missing key is not an error; it is
// reported through the boolean.
func (r *cacheRepository) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.New("cache key cannot be empty")
	}

	var entry models.StoredValue
	err := r.db.First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		log.Printf("ERROR: [CacheRepository] Failed to fetch entry '%s': %v", key, err)
		return "", false, fmt.Errorf("failed to fetch cache entry '%s': %w", key, err)
	}
	return entry.Value, true, nil
}

// Put stores value under key, replacing any previous value (UPSERT).
func (r *cacheRepository) Put(key string, value string) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}

	entry := models.StoredValue{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("ERROR: [CacheRepository] Failed to store entry '%s': %v", key, err)
		return fmt.Errorf("failed to store cache entry '%s': %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Keys that do not exist are ignored.
func (r *cacheRepository) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.Delete(&models.StoredValue{}, "key IN ?", keys).Error; err != nil {
		log.Printf("ERROR: [CacheRepository] Failed to delete entries %v: %v", keys, err)
		return fmt.Errorf("failed to delete cache entries: %w", err)
	}
	log.Printf("INFO: [CacheRepository] Deleted entries: %v", keys)
	return nil
}
