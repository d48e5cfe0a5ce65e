package repository

import (
	githubdomain "lifelog-backend/internal/github/domain"
)

// CommitRepository defines the persistence operations for GitHub commits
type CommitRepository interface {
	// Insert-or-update keyed by (userID, owner, repo, sha)
	Upsert(commit *githubdomain.Commit) error
	// Look up one commit by its natural key; returns nil when absent
	FindByKey(userID, owner, repo, sha string) (*githubdomain.Commit, error)
	// List stored commits for a user, newest first
	ListByUser(userID string, limit, offset int) ([]githubdomain.Commit, int64, error)
}
