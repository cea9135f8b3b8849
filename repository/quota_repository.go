package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/phdonas/site/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuotaRepository defines the interface for interacting with guest quota data.
type QuotaRepository interface {
	GetQuota(guestUserID string) (*models.GuestQuota, error)
	IncrementQuota(guestUserID string) (*models.GuestQuota, error)
}

type quotaRepository struct {
	db *gorm.DB
}

// NewQuotaRepository creates a new instance of QuotaRepository.
func NewQuotaRepository(db *gorm.DB) QuotaRepository {
	return &quotaRepository{db: db}
}

// GetQuota retrieves the current quota usage for a guest user.
// If the guest user is not found, it returns a new GuestQuota object with
// 0 messages sent and no error. This is a specific behavior for quota checking.
func (r *quotaRepository) GetQuota(guestUserID string) (*models.GuestQuota, error) {
	if guestUserID == "" {
		return nil, errors.New("guest user ID cannot be empty")
	}

	var quota models.GuestQuota
	err := r.db.First(&quota, "guest_user_id = ?", guestUserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.GuestQuota{GuestUserID: guestUserID, MessagesSent: 0}, nil
		}
		log.Printf("ERROR: [QuotaRepository] Failed to fetch quota for guestUserID %s: %v", guestUserID, err)
		return nil, fmt.Errorf("failed to fetch quota for guestUserID %s: %w", guestUserID, err)
	}
	return &quota, nil
}

// IncrementQuota increments the message count for a guest user.
// If the user doesn't exist, it creates a new record. Uses GORM's OnConflict (UPSERT).
func (r *quotaRepository) IncrementQuota(guestUserID string) (*models.GuestQuota, error) {
	if guestUserID == "" {
		return nil, errors.New("guest user ID cannot be empty")
	}

	quotaToUpsert := models.GuestQuota{
		GuestUserID:  guestUserID,
		MessagesSent: 1, // the INSERT part of the UPSERT
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guest_user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"messages_sent": gorm.Expr("messages_sent + 1")}),
	}).Create(&quotaToUpsert).Error
	if err != nil {
		log.Printf("ERROR: [QuotaRepository] Failed to increment quota for guestUserID %s during UPSERT: %v", guestUserID, err)
		return nil, fmt.Errorf("failed to increment quota for guestUserID %s: %w", guestUserID, err)
	}

	// The struct passed to Create is not updated when the record already
	// existed, so re-fetch to return the actual current state.
	var currentQuota models.GuestQuota
	if fetchErr := r.db.First(&currentQuota, "guest_user_id = ?", guestUserID).Error; fetchErr != nil {
		log.Printf("ERROR: [QuotaRepository] Failed to fetch quota for guestUserID %s after increment: %v", guestUserID, fetchErr)
		return nil, fmt.Errorf("failed to fetch quota for guestUserID %s after increment: %w", guestUserID, fetchErr)
	}

	return &currentQuota, nil
}
