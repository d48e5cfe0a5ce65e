package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	emaildto "lifelog-backend/internal/email/dto"
	"lifelog-backend/internal/email/usecase"
	"lifelog-backend/internal/ingest"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// AuthURL returns the Google consent URL to start the OAuth flow.
func (h *EmailHandler) AuthURL(c *gin.Context) {
	url, err := h.emailUsecase.AuthURL()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "url": url})
}

// OAuth2Callback trades the consent code for tokens. The refresh token is
// returned to the caller so it can be put into the environment; it is not
// persisted here.
func (h *EmailHandler) OAuth2Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "code required"})
		return
	}

	token, err := h.emailUsecase.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"refresh_token": token.RefreshToken,
		"expiry":        token.Expiry,
	})
}

// Fetch triggers one fetch-and-store run against the inbox.
// GET /api/emails/fetch?userId=demo&days=30&limit=100
func (h *EmailHandler) Fetch(c *gin.Context) {
	req := emaildto.FetchRequest{
		UserID:       c.DefaultQuery("userId", "demo"),
		RefreshToken: c.Query("refreshToken"),
	}
	if daysStr := c.Query("days"); daysStr != "" {
		if parsed, err := strconv.Atoi(daysStr); err == nil && parsed > 0 {
			req.Days = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}

	counters, err := h.emailUsecase.FetchAndStore(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.FetchResponse{OK: true, Counters: counters})
}

// FetchSent triggers a run limited to the sent mailbox.
// GET /api/emails/fetch-sent?userId=demo&days=30&limit=200
func (h *EmailHandler) FetchSent(c *gin.Context) {
	days := 30
	if daysStr := c.Query("days"); daysStr != "" {
		if parsed, err := strconv.Atoi(daysStr); err == nil && parsed > 0 {
			days = parsed
		}
	}
	req := emaildto.FetchRequest{
		UserID:        c.DefaultQuery("userId", "demo"),
		RefreshToken:  c.Query("refreshToken"),
		Limit:         200,
		OverrideQuery: fmt.Sprintf("newer_than:%dd in:sent", days),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}

	counters, err := h.emailUsecase.FetchAndStore(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.FetchResponse{OK: true, Box: "SENT", Counters: counters})
}

// Emails returns stored emails for a user, newest first.
func (h *EmailHandler) Emails(c *gin.Context) {
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

	emails, total, err := h.emailUsecase.ListEmails(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailsResponse{
		Emails: emails,
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

func statusFor(err error) int {
	var ce *ingest.ConfigError
	if errors.As(err, &ce) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
