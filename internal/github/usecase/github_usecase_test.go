package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	githubdomain "lifelog-backend/internal/github/domain"
	githubdto "lifelog-backend/internal/github/dto"
	"lifelog-backend/internal/ingest"
)

type listCall struct {
	perPage int
	page    int
}

// mockGitHub serves a fixed commit history through page-numbered listing.
type mockGitHub struct {
	commits     []*gh.RepositoryCommit
	listCalls   []listCall
	detailCalls []string
	listErr     error
	detailErr   error
}

func (m *mockGitHub) ListCommits(_ context.Context, _, _ string, _ time.Time, perPage, page int) ([]*gh.RepositoryCommit, error) {
	m.listCalls = append(m.listCalls, listCall{perPage: perPage, page: page})
	if m.listErr != nil {
		return nil, m.listErr
	}

	start := (page - 1) * perPage
	if start >= len(m.commits) {
		return nil, nil
	}
	end := start + perPage
	if end > len(m.commits) {
		end = len(m.commits)
	}
	return m.commits[start:end], nil
}

func (m *mockGitHub) GetCommit(_ context.Context, _, _, sha string) (*gh.RepositoryCommit, error) {
	m.detailCalls = append(m.detailCalls, sha)
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	return &gh.RepositoryCommit{
		SHA: gh.Ptr(sha),
		Files: []*gh.CommitFile{
			{Filename: gh.Ptr("main.go")},
			{Filename: gh.Ptr("main_test.go")},
		},
		Stats: &gh.CommitStats{Additions: gh.Ptr(10), Deletions: gh.Ptr(2)},
	}, nil
}

func (m *mockGitHub) ListRepos(_ context.Context, _ string) ([]*gh.Repository, error) {
	return []*gh.Repository{
		{FullName: gh.Ptr("kay/lifelog"), Private: gh.Ptr(true), DefaultBranch: gh.Ptr("main")},
	}, nil
}

type mockCommitRepo struct {
	stored   map[string]*githubdomain.Commit
	failSHAs map[string]bool
}

func newMockCommitRepo() *mockCommitRepo {
	return &mockCommitRepo{stored: make(map[string]*githubdomain.Commit), failSHAs: make(map[string]bool)}
}

func (r *mockCommitRepo) Upsert(commit *githubdomain.Commit) error {
	if r.failSHAs[commit.SHA] {
		return errors.New("simulated conflict")
	}
	r.stored[commit.UserID+"/"+commit.Owner+"/"+commit.Repo+"/"+commit.SHA] = commit
	return nil
}

func (r *mockCommitRepo) FindByKey(userID, owner, repo, sha string) (*githubdomain.Commit, error) {
	return r.stored[userID+"/"+owner+"/"+repo+"/"+sha], nil
}

func (r *mockCommitRepo) ListByUser(string, int, int) ([]githubdomain.Commit, int64, error) {
	return nil, 0, nil
}

func commitHistory(n int) []*gh.RepositoryCommit {
	commits := make([]*gh.RepositoryCommit, 0, n)
	for i := 0; i < n; i++ {
		commits = append(commits, &gh.RepositoryCommit{
			SHA: gh.Ptr(fmt.Sprintf("sha%03d", i)),
			Commit: &gh.Commit{
				Message: gh.Ptr(fmt.Sprintf("commit %d", i)),
				Author: &gh.CommitAuthor{
					Name:  gh.Ptr("Kay"),
					Email: gh.Ptr("kay@example.com"),
					Date:  &gh.Timestamp{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
				},
			},
		})
	}
	return commits
}

func TestFetchAndStoreSinglePageForSmallLimit(t *testing.T) {
	conn := &mockGitHub{commits: commitHistory(200)}
	repo := newMockCommitRepo()
	uc := NewGitHubUsecase(repo, conn, "token")

	c, err := uc.FetchAndStore(context.Background(), githubdto.FetchRequest{
		UserID: "u1", Owner: "kay", Repo: "lifelog", Limit: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, c.Requested)
	assert.Equal(t, 30, c.Success)
	// Only 30 commits were requested, so exactly one page of size 30.
	require.Len(t, conn.listCalls, 1)
	assert.Equal(t, listCall{perPage: 30, page: 1}, conn.listCalls[0])
	assert.Empty(t, conn.detailCalls, "no enrichment unless asked for")
}

func TestFetchAndStorePagesUntilLimit(t *testing.T) {
	conn := &mockGitHub{commits: commitHistory(200)}
	repo := newMockCommitRepo()
	uc := NewGitHubUsecase(repo, conn, "token")

	c, err := uc.FetchAndStore(context.Background(), githubdto.FetchRequest{
		UserID: "u1", Owner: "kay", Repo: "lifelog", Limit: 120, PerPage: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, 120, c.Requested)
	require.Len(t, conn.listCalls, 3)
	assert.Equal(t, listCall{perPage: 50, page: 1}, conn.listCalls[0])
	assert.Equal(t, listCall{perPage: 50, page: 2}, conn.listCalls[1])
	assert.Equal(t, listCall{perPage: 20, page: 3}, conn.listCalls[2])
}

func TestFetchAndStoreExhaustsShortHistory(t *testing.T) {
	conn := &mockGitHub{commits: commitHistory(7)}
	repo := newMockCommitRepo()
	uc := NewGitHubUsecase(repo, conn, "token")

	c, err := uc.FetchAndStore(context.Background(), githubdto.FetchRequest{
		UserID: "u1", Owner: "kay", Repo: "lifelog", Limit: 100, PerPage: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, c.Requested)
	assert.Equal(t, 7, c.Success)
	assert.Len(t, repo.stored, 7)
}

func TestFetchAndStoreIncludeFiles(t *testing.T) {
	conn := &mockGitHub{commits: commitHistory(3)}
	repo := newMockCommitRepo()
	uc := NewGitHubUsecase(repo, conn, "token")

	c, err := uc.FetchAndStore(context.Background(), githubdto.FetchRequest{
		UserID: "u1", Owner: "kay", Repo: "lifelog", Limit: 10, IncludeFiles: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, c.Success)
	assert.Len(t, conn.detailCalls, 3)

	stored, err := repo.FindByKey("u1", "kay", "lifelog", "sha001")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"main.go", "main_test.go"}, stored.FilesChanged)
	assert.Equal(t, 10, stored.Additions)
	assert.Equal(t, 2, stored.Deletions)
}

func TestFetchAndStoreDetailFailureCountsItem(t *testing.T) {
	conn := &mockGitHub{commits: commitHistory(5), detailErr: errors.New("detail unavailable")}
	repo := newMockCommitRepo()
	uc := NewGitHubUsecase(repo, conn, "token")

	c, err := uc.FetchAndStore(context.Background(), githubdto.FetchRequest{
		UserID: "u1", Owner: "kay", Repo: "lifelog", Limit: 10, IncludeFiles: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, c.Requested)
	assert.Equal(t, 0, c.Success)
	assert.Equal(t, 5, c.Failed)
	assert.Empty(t, repo.stored)
}

func TestFetchAndStoreGitHubValidation(t *testing.T) {
	conn := &mockGitHub{commits: commitHistory(5)}
	repo := newMockCommitRepo()

	cases := []struct {
		name  string
		token string
		req   githubdto.FetchRequest
		want  string
	}{
		{"missing user", "t", githubdto.FetchRequest{Owner: "o", Repo: "r"}, "userId"},
		{"missing owner", "t", githubdto.FetchRequest{UserID: "u", Repo: "r"}, "owner and repo"},
		{"missing repo", "t", githubdto.FetchRequest{UserID: "u", Owner: "o"}, "owner and repo"},
		{"missing token", "", githubdto.FetchRequest{UserID: "u", Owner: "o", Repo: "r"}, "GITHUB_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewGitHubUsecase(repo, conn, tc.token)
			_, err := uc.FetchAndStore(context.Background(), tc.req)

			var ce *ingest.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.want, ce.Name)
		})
	}
	assert.Empty(t, conn.listCalls)
}

func TestFetchAndStoreUpstreamAborts(t *testing.T) {
	conn := &mockGitHub{listErr: &ingest.UpstreamError{Source: "github", Status: 404, Body: "Not Found"}}
	uc := NewGitHubUsecase(newMockCommitRepo(), conn, "token")

	_, err := uc.FetchAndStore(context.Background(), githubdto.FetchRequest{UserID: "u", Owner: "o", Repo: "r"})
	var ue *ingest.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 404, ue.Status)
}

func TestNormalizeCommitDefaults(t *testing.T) {
	fetchedAt := time.Now()

	// Commit with no author/committer blocks at all.
	rec := normalizeCommit(&gh.RepositoryCommit{SHA: gh.Ptr("abc")}, "u1", "o", "r", fetchedAt)
	assert.Equal(t, "abc", rec.SHA)
	assert.Empty(t, rec.CommitMessage)
	assert.Empty(t, rec.AuthorName)
	assert.Empty(t, rec.AuthorEmail)
	assert.True(t, rec.AuthorDate.IsZero())
	assert.Equal(t, []string{}, rec.FilesChanged)
	assert.Equal(t, fetchedAt, rec.FetchedAt)

	// Author name falls back to the GitHub login when the git author block
	// carries no name.
	rec = normalizeCommit(&gh.RepositoryCommit{
		SHA:    gh.Ptr("def"),
		Author: &gh.User{Login: gh.Ptr("kay")},
	}, "u1", "o", "r", fetchedAt)
	assert.Equal(t, "kay", rec.AuthorName)
}

func TestListReposProjection(t *testing.T) {
	uc := NewGitHubUsecase(newMockCommitRepo(), &mockGitHub{}, "token")

	repos, err := uc.ListRepos(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "kay/lifelog", repos[0].FullName)
	assert.True(t, repos[0].Private)
	assert.Equal(t, "main", repos[0].DefaultBranch)
}
