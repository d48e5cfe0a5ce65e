// Package github wraps the go-github client with the commit-listing calls
// this system needs.
package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"lifelog-backend/internal/ingest"
)

const (
	// MaxPageSize is the hard upstream cap on list endpoints.
	MaxPageSize = 100

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// proactiveRate throttles well below the authenticated 5000/hour quota.
	proactiveRate = 1.2
)

// Client is an authenticated GitHub API client.
type Client struct {
	gh      *gh.Client
	limiter *rate.Limiter
}

func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:      gh.NewClient(tc),
		limiter: rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// ListCommits returns one page of commits for a repository, newest first,
// restricted to commits after since. page is 1-based.
func (c *Client) ListCommits(ctx context.Context, owner, repo string, since time.Time, perPage, page int) ([]*gh.RepositoryCommit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if perPage <= 0 || perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	opts := &gh.CommitsListOptions{
		Since: since,
		ListOptions: gh.ListOptions{
			PerPage: perPage,
			Page:    page,
		},
	}
	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, upstreamErr(err)
	}
	return commits, nil
}

// GetCommit fetches a single commit with file-level stats. One extra round
// trip per commit, so callers only ask for it when enrichment is requested.
func (c *Client) GetCommit(ctx context.Context, owner, repo, sha string) (*gh.RepositoryCommit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	commit, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, upstreamErr(err)
	}
	return commit, nil
}

// ListRepos returns the repositories accessible to the authenticated user.
func (c *Client) ListRepos(ctx context.Context, visibility string) ([]*gh.Repository, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if visibility == "" {
		visibility = "all"
	}

	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Visibility:  visibility,
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: MaxPageSize},
	}
	repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, upstreamErr(err)
	}
	return repos, nil
}

// upstreamErr maps go-github error responses onto the run-level error type.
func upstreamErr(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		status := http.StatusBadGateway
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		return &ingest.UpstreamError{Source: "github", Status: status, Body: ghErr.Message}
	}
	return err
}
