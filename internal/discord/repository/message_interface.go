package repository

import (
	discorddomain "lifelog-backend/internal/discord/domain"
)

// MessageRepository defines the persistence operations for Discord messages
type MessageRepository interface {
	// Insert-or-update keyed by (userID, channelID, messageID)
	Upsert(msg *discorddomain.Message) error
	// Look up one message by its natural key; returns nil when absent
	FindByKey(userID, channelID, messageID string) (*discorddomain.Message, error)
	// List stored messages for a user, newest first
	ListByUser(userID string, limit, offset int) ([]discorddomain.Message, int64, error)
}
