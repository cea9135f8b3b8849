package models

// InitResponse defines the structure for the /api/init endpoint response.
type InitResponse struct {
	UserID         string       `json:"user_id"`
	GuestChatQuota int          `json:"guest_chat_quota"` // Max assistant messages for a guest
	MessagesSent   int          `json:"messages_sent"`    // Messages already sent by this guest
	RemainingQuota int          `json:"remaining_quota"`
	Settings       SiteSettings `json:"settings"`
	Pillars        []Pillar     `json:"pillars"`
}
