package domain

import "time"

// Message is one Discord message stored for a user. (UserID, ChannelID,
// MessageID) is the natural key: MessageID comes from Discord and is never
// regenerated, and repeated fetches of the same message overwrite the other
// fields in place.
type Message struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_channel_message"`
	GuildID        string    `json:"guild_id"`
	ChannelID      string    `json:"channel_id" gorm:"not null;uniqueIndex:idx_user_channel_message"`
	MessageID      string    `json:"message_id" gorm:"not null;uniqueIndex:idx_user_channel_message"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content" gorm:"type:text"`
	Attachments    []string  `json:"attachments" gorm:"serializer:json"`
	PostedAt       time.Time `json:"posted_at"`
	FetchedAt      time.Time `json:"fetched_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
