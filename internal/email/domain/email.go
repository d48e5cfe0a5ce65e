package domain

import "time"

// Email is one Gmail message stored for a user. (UserID, GmailID) is the
// natural key; GmailID is the source message id and is never regenerated.
type Email struct {
	ID       string `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"not null;uniqueIndex:idx_user_gmail"`
	GmailID  string `json:"gmail_id" gorm:"not null;uniqueIndex:idx_user_gmail"`
	ThreadID string `json:"thread_id" gorm:"index"`

	Subject  string   `json:"subject"`
	From     string   `json:"from"`
	To       []string `json:"to" gorm:"serializer:json"`
	Cc       []string `json:"cc" gorm:"serializer:json"`
	Snippet  string   `json:"snippet"`
	BodyText string   `json:"body_text" gorm:"type:text"`
	BodyHTML string   `json:"body_html" gorm:"type:text"`
	Labels   []string `json:"labels" gorm:"serializer:json"`

	Date      time.Time `json:"date"`
	FetchedAt time.Time `json:"fetched_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
