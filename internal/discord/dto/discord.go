package dto

import (
	discorddomain "lifelog-backend/internal/discord/domain"
	"lifelog-backend/internal/ingest"
)

type FetchRequest struct {
	UserID    string
	ChannelID string
	Pages     int
	PerPage   int
}

type FetchResponse struct {
	OK        bool   `json:"ok"`
	ChannelID string `json:"channelId"`
	ingest.Counters
}

type MessagesResponse struct {
	Messages []discorddomain.Message `json:"messages"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
	Total    int64                   `json:"total"`
}
