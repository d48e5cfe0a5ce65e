package usecase

import (
	"context"
	"strconv"
	"time"

	gh "github.com/google/go-github/v80/github"

	githubdomain "lifelog-backend/internal/github/domain"
	githubdto "lifelog-backend/internal/github/dto"
	"lifelog-backend/internal/github/repository"
	"lifelog-backend/internal/ingest"
)

const (
	// DefaultSinceDays is the commit lookback window when none is given.
	DefaultSinceDays = 30
	// DefaultLimit bounds the total commits of a run.
	DefaultLimit = 100
	// DefaultPerPage is the listing page size.
	DefaultPerPage = 50
)

type githubUsecase struct {
	repo      repository.CommitRepository
	connector Connector
	hasToken  bool
}

func NewGitHubUsecase(repo repository.CommitRepository, connector Connector, token string) GitHubUsecase {
	return &githubUsecase{
		repo:      repo,
		connector: connector,
		hasToken:  token != "",
	}
}

func (u *githubUsecase) FetchAndStore(ctx context.Context, req githubdto.FetchRequest) (ingest.Counters, error) {
	// Validate before the first network call
	if req.UserID == "" {
		return ingest.Counters{}, &ingest.ConfigError{Name: "userId"}
	}
	if req.Owner == "" || req.Repo == "" {
		return ingest.Counters{}, &ingest.ConfigError{Name: "owner and repo"}
	}
	if !u.hasToken {
		return ingest.Counters{}, &ingest.ConfigError{Name: "GITHUB_TOKEN"}
	}

	sinceDays := req.SinceDays
	if sinceDays <= 0 {
		sinceDays = DefaultSinceDays
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	since := time.Now().AddDate(0, 0, -sinceDays)
	fetchedAt := time.Now()

	// The cursor is the 1-based page number of the commits listing.
	source := ingest.SourceFunc[*gh.RepositoryCommit](func(ctx context.Context, cursor string, pageSize int) ([]*gh.RepositoryCommit, string, error) {
		page := 1
		if cursor != "" {
			parsed, err := strconv.Atoi(cursor)
			if err != nil {
				return nil, "", err
			}
			page = parsed
		}
		commits, err := u.connector.ListCommits(ctx, req.Owner, req.Repo, since, pageSize, page)
		if err != nil {
			return nil, "", err
		}
		return commits, strconv.Itoa(page + 1), nil
	})

	process := func(ctx context.Context, c *gh.RepositoryCommit) error {
		rec := normalizeCommit(c, req.UserID, req.Owner, req.Repo, fetchedAt)
		if req.IncludeFiles {
			// One extra round trip per commit, only when asked for.
			detail, err := u.connector.GetCommit(ctx, req.Owner, req.Repo, c.GetSHA())
			if err != nil {
				return err
			}
			applyDetail(rec, detail)
		}
		return u.repo.Upsert(rec)
	}

	return ingest.Run(ctx, "github", source, process, ingest.Options{
		MaxItems: limit,
		PageSize: perPage,
	})
}

func (u *githubUsecase) ListRepos(ctx context.Context) ([]githubdto.RepoSummary, error) {
	if !u.hasToken {
		return nil, &ingest.ConfigError{Name: "GITHUB_TOKEN"}
	}

	repos, err := u.connector.ListRepos(ctx, "all")
	if err != nil {
		return nil, err
	}

	minimal := make([]githubdto.RepoSummary, 0, len(repos))
	for _, r := range repos {
		summary := githubdto.RepoSummary{
			FullName:      r.GetFullName(),
			Private:       r.GetPrivate(),
			DefaultBranch: r.GetDefaultBranch(),
		}
		if pushed := r.GetPushedAt(); !pushed.IsZero() {
			summary.PushedAt = pushed.Format(time.RFC3339)
		}
		minimal = append(minimal, summary)
	}
	return minimal, nil
}

func (u *githubUsecase) ListCommits(userID string, limit, offset int) ([]githubdomain.Commit, int64, error) {
	return u.repo.ListByUser(userID, limit, offset)
}

// normalizeCommit maps a listed commit onto the stored record. All accesses
// go through go-github's nil-safe getters, so missing author or committer
// blocks leave empty defaults.
func normalizeCommit(c *gh.RepositoryCommit, userID, owner, repo string, fetchedAt time.Time) *githubdomain.Commit {
	commit := c.GetCommit()

	rec := &githubdomain.Commit{
		UserID:        userID,
		Owner:         owner,
		Repo:          repo,
		SHA:           c.GetSHA(),
		CommitMessage: commit.GetMessage(),
		HTMLURL:       c.GetHTMLURL(),
		FilesChanged:  []string{},
		FetchedAt:     fetchedAt,
	}

	if author := commit.GetAuthor(); author != nil {
		rec.AuthorName = author.GetName()
		rec.AuthorEmail = author.GetEmail()
		rec.AuthorDate = author.GetDate().Time
	}
	if rec.AuthorName == "" {
		rec.AuthorName = c.GetAuthor().GetLogin()
	}

	if committer := commit.GetCommitter(); committer != nil {
		rec.CommitterName = committer.GetName()
		rec.CommitterEmail = committer.GetEmail()
		rec.CommitterDate = committer.GetDate().Time
	}
	if rec.CommitterName == "" {
		rec.CommitterName = c.GetCommitter().GetLogin()
	}

	return rec
}

// applyDetail copies file-level stats from a per-commit detail fetch.
func applyDetail(rec *githubdomain.Commit, detail *gh.RepositoryCommit) {
	files := make([]string, 0, len(detail.Files))
	for _, f := range detail.Files {
		files = append(files, f.GetFilename())
	}
	rec.FilesChanged = files
	rec.Additions = detail.GetStats().GetAdditions()
	rec.Deletions = detail.GetStats().GetDeletions()
}
