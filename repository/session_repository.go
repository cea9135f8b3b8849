package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/phdonas/site/models"
	"github.com/phdonas/site/utils"

	"gorm.io/gorm"
)

// SessionRepository persists authenticated admin sessions.
type SessionRepository interface {
	Create(ttl time.Duration) (string, error)
	Validate(token string) (bool, error)
	Delete(token string) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create issues a new session token valid for the given duration.
func (r *sessionRepository) Create(ttl time.Duration) (string, error) {
	session := models.AdminSession{
		Token:     utils.GenerateToken(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := r.db.Create(&session).Error; err != nil {
		log.Printf("ERROR: [SessionRepository] Failed to create admin session: %v", err)
		return "", fmt.Errorf("failed to create admin session: %w", err)
	}
	return session.Token, nil
}

// Validate reports whether token belongs to a live session. Expired sessions
// are removed as a side effect.
func (r *sessionRepository) Validate(token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	var session models.AdminSession
	err := r.db.First(&session, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up admin session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if delErr := r.db.Delete(&session).Error; delErr != nil {
			log.Printf("WARN: [SessionRepository] Failed to remove expired session: %v", delErr)
		}
		return false, nil
	}
	return true, nil
}

// Delete removes the session with the given token, if any.
func (r *sessionRepository) Delete(token string) error {
	if token == "" {
		return nil
	}
	if err := r.db.Delete(&models.AdminSession{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to delete admin session: %w", err)
	}
	return nil
}
