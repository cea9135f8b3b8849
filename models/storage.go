package models

import "time"

// StoredValue is one entry in the site's persisted key-value store. It backs
// both the versioned content snapshots and the editable site settings: values
// are JSON-serialized strings under fixed key names, always replaced whole.
type StoredValue struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the StoredValue model.
func (StoredValue) TableName() string {
	return "stored_values"
}

// AdminSession marks an authenticated admin session.
type AdminSession struct {
	Token     string    `gorm:"primaryKey"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

// TableName specifies the table name for the AdminSession model.
func (AdminSession) TableName() string {
	return "admin_sessions"
}
