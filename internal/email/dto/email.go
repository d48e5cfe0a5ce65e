package dto

import (
	emaildomain "lifelog-backend/internal/email/domain"
	"lifelog-backend/internal/ingest"
)

type FetchRequest struct {
	UserID       string
	Days         int
	Limit        int
	RefreshToken string
	// OverrideQuery replaces the newer_than search query entirely.
	OverrideQuery string
}

type FetchResponse struct {
	OK  bool   `json:"ok"`
	Box string `json:"box,omitempty"`
	ingest.Counters
}

type EmailsResponse struct {
	Emails []emaildomain.Email `json:"emails"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
	Total  int64               `json:"total"`
}
