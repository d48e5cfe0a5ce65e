package repository

import (
	emaildomain "lifelog-backend/internal/email/domain"
)

// EmailRepository defines the persistence operations for Gmail messages
type EmailRepository interface {
	// Insert-or-update keyed by (userID, gmailID)
	Upsert(email *emaildomain.Email) error
	// Look up one email by its natural key; returns nil when absent
	FindByKey(userID, gmailID string) (*emaildomain.Email, error)
	// List stored emails for a user, newest first
	ListByUser(userID string, limit, offset int) ([]emaildomain.Email, int64, error)
}
