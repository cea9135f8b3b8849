package repository

import (
	"errors"
	"log"
	"sync"

	"github.com/phdonas/site/models"
)

// ChatRepository keeps the per-visitor assistant transcript. The transcript is
// local display state only; it is never sent back to the completion API.
type ChatRepository interface {
	SaveMessage(message models.ChatMessage) error
	GetMessagesByUserID(userID string) ([]models.ChatMessage, error)
}

type chatRepository struct {
	messages map[string][]models.ChatMessage // keyed by UserID
	mu       sync.RWMutex
}

// NewChatRepository creates an in-memory chat repository instance.
func NewChatRepository() ChatRepository {
	return &chatRepository{
		messages: make(map[string][]models.ChatMessage),
	}
}

// SaveMessage appends a message to the user's transcript.
func (r *chatRepository) SaveMessage(message models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.UserID == "" {
		return errors.New("cannot save message: UserID is empty")
	}

	userMessages := r.messages[message.UserID]
	message.ID = uint(len(userMessages) + 1) // IDs increment within a user's transcript

	r.messages[message.UserID] = append(userMessages, message)
	return nil
}

// GetMessagesByUserID returns a copy of the user's transcript. A user without
// messages yields an empty slice, not an error.
func (r *chatRepository) GetMessagesByUserID(userID string) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userMessages, exists := r.messages[userID]
	if !exists || len(userMessages) == 0 {
		return []models.ChatMessage{}, nil
	}

	// Return a copy so callers cannot mutate internal state.
	result := make([]models.ChatMessage, len(userMessages))
	copy(result, userMessages)

	log.Printf("INFO: [ChatRepository] Fetched %d messages for user '%s'", len(result), userID)
	return result, nil
}
