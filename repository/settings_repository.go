package repository

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/phdonas/site/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// siteSettingsKey is the fixed key the editable site configuration is stored
// under, mirroring the key used by the original admin dashboard.
const siteSettingsKey = "phd_site_config"

// SettingsRepository persists the editable site configuration fields.
type SettingsRepository interface {
	GetSettings() (models.SiteSettings, error)
	SaveSettings(settings models.SiteSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetSettings returns the persisted site settings, or the built-in defaults
// when nothing has been saved yet. A corrupt stored value also falls back to
// the defaults rather than failing the caller.
func (r *settingsRepository) GetSettings() (models.SiteSettings, error) {
	var entry models.StoredValue
	err := r.db.First(&entry, "key = ?", siteSettingsKey).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.DefaultSiteSettings(), nil
		}
		return models.DefaultSiteSettings(), fmt.Errorf("failed to fetch site settings: %w", err)
	}

	var settings models.SiteSettings
	if unmarshalErr := json.Unmarshal([]byte(entry.Value), &settings); unmarshalErr != nil {
		log.Printf("WARN: [SettingsRepository] Stored site settings are not valid JSON, returning defaults: %v", unmarshalErr)
		return models.DefaultSiteSettings(), nil
	}
	return settings, nil
}

// SaveSettings replaces the persisted site settings with the given copy.
func (r *settingsRepository) SaveSettings(settings models.SiteSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize site settings: %w", err)
	}

	entry := models.StoredValue{Key: siteSettingsKey, Value: string(payload)}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("ERROR: [SettingsRepository] Failed to save site settings: %v", err)
		return fmt.Errorf("failed to save site settings: %w", err)
	}
	log.Println("INFO: [SettingsRepository] Site settings saved.")
	return nil
}
