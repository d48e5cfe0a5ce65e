package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	discorddto "lifelog-backend/internal/discord/dto"
	"lifelog-backend/internal/discord/usecase"
	"lifelog-backend/internal/ingest"
)

type DiscordHandler struct {
	discordUsecase usecase.DiscordUsecase
}

func NewDiscordHandler(discordUsecase usecase.DiscordUsecase) *DiscordHandler {
	return &DiscordHandler{
		discordUsecase: discordUsecase,
	}
}

// Ping verifies the route group is mounted.
func (h *DiscordHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "where": "discord"})
}

// Whoami checks the bot token against the Discord API.
func (h *DiscordHandler) Whoami(c *gin.Context) {
	user, err := h.discordUsecase.Whoami(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": user.ID, "username": user.Username})
}

// Fetch triggers one fetch-and-store run for a channel.
// GET /api/discord/fetch?userId=demo&channelId=123&pages=2&perPage=50
func (h *DiscordHandler) Fetch(c *gin.Context) {
	req := discorddto.FetchRequest{
		UserID:    c.DefaultQuery("userId", "demo"),
		ChannelID: c.Query("channelId"),
		Pages:     2,
		PerPage:   50,
	}
	if pagesStr := c.Query("pages"); pagesStr != "" {
		if parsed, err := strconv.Atoi(pagesStr); err == nil && parsed > 0 {
			req.Pages = parsed
		}
	}
	if perPageStr := c.Query("perPage"); perPageStr != "" {
		if parsed, err := strconv.Atoi(perPageStr); err == nil && parsed > 0 {
			req.PerPage = parsed
		}
	}

	counters, err := h.discordUsecase.FetchAndStore(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, discorddto.FetchResponse{OK: true, ChannelID: req.ChannelID, Counters: counters})
}

// Messages returns stored messages for a user.
func (h *DiscordHandler) Messages(c *gin.Context) {
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

	messages, total, err := h.discordUsecase.ListMessages(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, discorddto.MessagesResponse{
		Messages: messages,
		Limit:    limit,
		Offset:   offset,
		Total:    total,
	})
}

// statusFor maps run-level errors onto HTTP statuses: validation failures
// are the caller's fault, everything else is a server-side failure.
func statusFor(err error) int {
	var ce *ingest.ConfigError
	if errors.As(err, &ce) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
