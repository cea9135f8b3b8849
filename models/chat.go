package models

import (
	"time"
)

// ChatMessage is one entry of a visitor's local assistant transcript. The
// transcript is display-only: the assistant call itself is stateless and never
// sends history back to the completion API.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
