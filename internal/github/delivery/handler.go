package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	githubdto "lifelog-backend/internal/github/dto"
	"lifelog-backend/internal/github/usecase"
	"lifelog-backend/internal/ingest"
)

type GitHubHandler struct {
	githubUsecase usecase.GitHubUsecase
}

func NewGitHubHandler(githubUsecase usecase.GitHubUsecase) *GitHubHandler {
	return &GitHubHandler{
		githubUsecase: githubUsecase,
	}
}

// Repos lists the repositories the configured token can reach.
func (h *GitHubHandler) Repos(c *gin.Context) {
	repos, err := h.githubUsecase.ListRepos(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, githubdto.ReposResponse{OK: true, Count: len(repos), Repos: repos})
}

// Fetch triggers one commit fetch-and-store run for a repository.
// GET /api/github/fetch?userId=demo&owner=kay&repo=lifelog&days=30&limit=50&includeFiles=true
func (h *GitHubHandler) Fetch(c *gin.Context) {
	req := githubdto.FetchRequest{
		UserID:       c.DefaultQuery("userId", "demo"),
		Owner:        c.Query("owner"),
		Repo:         c.Query("repo"),
		SinceDays:    30,
		Limit:        50,
		IncludeFiles: c.Query("includeFiles") == "true",
	}
	if daysStr := c.Query("days"); daysStr != "" {
		if parsed, err := strconv.Atoi(daysStr); err == nil && parsed > 0 {
			req.SinceDays = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}

	counters, err := h.githubUsecase.FetchAndStore(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, githubdto.FetchResponse{OK: true, Owner: req.Owner, Repo: req.Repo, Counters: counters})
}

// Commits returns stored commits for a user.
func (h *GitHubHandler) Commits(c *gin.Context) {
	userID := c.DefaultQuery("userId", "demo")

	limit := 50
	offset := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	commits, total, err := h.githubUsecase.ListCommits(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, githubdto.CommitsResponse{
		Commits: commits,
		Limit:   limit,
		Offset:  offset,
		Total:   total,
	})
}

func statusFor(err error) int {
	var ce *ingest.ConfigError
	if errors.As(err, &ce) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
