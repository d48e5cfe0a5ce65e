package usecase

import (
	"time"

	discorddomain "lifelog-backend/internal/discord/domain"
	"lifelog-backend/pkg/discord"
)

// normalizeMessage maps a raw Discord message onto the stored record. Every
// field access tolerates absence: a missing author leaves the author fields
// empty, and a missing timestamp falls back to the time encoded in the
// snowflake id, then to the fetch time.
func normalizeMessage(m discord.Message, userID, channelID string, fetchedAt time.Time) *discorddomain.Message {
	rec := &discorddomain.Message{
		UserID:      userID,
		GuildID:     m.GuildID,
		ChannelID:   channelID,
		MessageID:   m.ID,
		Content:     m.Content,
		Attachments: make([]string, 0, len(m.Attachments)),
		PostedAt:    messageTime(m, fetchedAt),
		FetchedAt:   fetchedAt,
	}

	if m.Author != nil {
		rec.AuthorID = m.Author.ID
		rec.AuthorUsername = m.Author.Username
	}
	for _, a := range m.Attachments {
		rec.Attachments = append(rec.Attachments, a.URL)
	}

	return rec
}

func messageTime(m discord.Message, fetchedAt time.Time) time.Time {
	if m.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339, m.Timestamp); err == nil {
			return t
		}
	}
	if t, ok := discord.SnowflakeTime(m.ID); ok {
		return t
	}
	return fetchedAt
}
