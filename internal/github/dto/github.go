package dto

import (
	githubdomain "lifelog-backend/internal/github/domain"
	"lifelog-backend/internal/ingest"
)

type FetchRequest struct {
	UserID       string
	Owner        string
	Repo         string
	SinceDays    int
	Limit        int
	PerPage      int
	IncludeFiles bool
}

type FetchResponse struct {
	OK    bool   `json:"ok"`
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	ingest.Counters
}

// RepoSummary is the minimal projection returned by the repos listing.
type RepoSummary struct {
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
	PushedAt      string `json:"pushed_at"`
}

type ReposResponse struct {
	OK    bool          `json:"ok"`
	Count int           `json:"count"`
	Repos []RepoSummary `json:"repos"`
}

type CommitsResponse struct {
	Commits []githubdomain.Commit `json:"commits"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
	Total   int64                 `json:"total"`
}
