package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	githubdomain "lifelog-backend/internal/github/domain"
)

var commitNonKeyColumns = []string{
	"commit_message", "author_name", "author_email", "author_date",
	"committer_name", "committer_email", "committer_date",
	"html_url", "files_changed", "additions", "deletions",
	"fetched_at", "updated_at",
}

type commitRepository struct {
	db *gorm.DB
}

func NewCommitRepository(db *gorm.DB) CommitRepository {
	return &commitRepository{db: db}
}

// Upsert inserts the commit or, when (user_id, owner, repo, sha) already
// exists, replaces its non-key fields.
func (r *commitRepository) Upsert(commit *githubdomain.Commit) error {
	now := time.Now()
	if commit.ID == "" {
		commit.ID = uuid.New().String()
	}
	commit.CreatedAt = now
	commit.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "owner"}, {Name: "repo"}, {Name: "sha"},
		},
		DoUpdates: clause.AssignmentColumns(commitNonKeyColumns),
	}).Create(commit).Error
}

func (r *commitRepository) FindByKey(userID, owner, repo, sha string) (*githubdomain.Commit, error) {
	var commit githubdomain.Commit
	err := r.db.Where("user_id = ? AND owner = ? AND repo = ? AND sha = ?", userID, owner, repo, sha).First(&commit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &commit, nil
}

func (r *commitRepository) ListByUser(userID string, limit, offset int) ([]githubdomain.Commit, int64, error) {
	var total int64
	if err := r.db.Model(&githubdomain.Commit{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var commits []githubdomain.Commit
	err := r.db.Where("user_id = ?", userID).
		Order("author_date DESC").
		Limit(limit).Offset(offset).
		Find(&commits).Error
	if err != nil {
		return nil, 0, err
	}
	return commits, total, nil
}
