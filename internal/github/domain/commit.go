package domain

import "time"

// Commit is one GitHub commit stored for a user. (UserID, Owner, Repo, SHA)
// is the natural key; the SHA comes from GitHub and is never regenerated.
type Commit struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"not null;uniqueIndex:idx_user_owner_repo_sha"`
	Owner  string `json:"owner" gorm:"not null;uniqueIndex:idx_user_owner_repo_sha"`
	Repo   string `json:"repo" gorm:"not null;uniqueIndex:idx_user_owner_repo_sha"`
	SHA    string `json:"sha" gorm:"not null;uniqueIndex:idx_user_owner_repo_sha"`

	CommitMessage  string    `json:"commit_message" gorm:"type:text"`
	AuthorName     string    `json:"author_name"`
	AuthorEmail    string    `json:"author_email"`
	AuthorDate     time.Time `json:"author_date"`
	CommitterName  string    `json:"committer_name"`
	CommitterEmail string    `json:"committer_email"`
	CommitterDate  time.Time `json:"committer_date"`

	HTMLURL      string   `json:"html_url"`
	FilesChanged []string `json:"files_changed" gorm:"serializer:json"`
	Additions    int      `json:"additions"`
	Deletions    int      `json:"deletions"`

	FetchedAt time.Time `json:"fetched_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
