package usecase

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	githubdomain "lifelog-backend/internal/github/domain"
	githubdto "lifelog-backend/internal/github/dto"
	"lifelog-backend/internal/ingest"
)

// Connector is the slice of the GitHub client the usecase depends on.
type Connector interface {
	ListCommits(ctx context.Context, owner, repo string, since time.Time, perPage, page int) ([]*gh.RepositoryCommit, error)
	GetCommit(ctx context.Context, owner, repo, sha string) (*gh.RepositoryCommit, error)
	ListRepos(ctx context.Context, visibility string) ([]*gh.Repository, error)
}

// GitHubUsecase defines the interface for GitHub commit aggregation
type GitHubUsecase interface {
	// FetchAndStore runs one paginated commit fetch for a repository and
	// upserts every commit for the requesting user
	FetchAndStore(ctx context.Context, req githubdto.FetchRequest) (ingest.Counters, error)
	// ListRepos lists the repositories accessible to the configured token
	ListRepos(ctx context.Context) ([]githubdto.RepoSummary, error)
	// ListCommits returns stored commits for a user, newest first
	ListCommits(userID string, limit, offset int) ([]githubdomain.Commit, int64, error)
}
