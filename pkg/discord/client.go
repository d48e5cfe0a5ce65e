// Package discord is a minimal REST client for the Discord API v10. There is
// no official Go SDK in use here; the two endpoints this system needs are
// plain GETs with bot-token authorization.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"lifelog-backend/internal/ingest"
)

const (
	// DefaultBaseURL is the Discord REST API root.
	DefaultBaseURL = "https://discord.com/api/v10"

	// MaxPageSize is the hard upstream cap on the messages listing.
	MaxPageSize = 100

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// requestsPerSecond keeps the client under Discord's global rate limit.
	requestsPerSecond = 5
)

// Author identifies the sender of a message.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Attachment is a file attached to a message.
type Attachment struct {
	URL string `json:"url"`
}

// Message is the subset of the Discord message payload this system consumes.
type Message struct {
	ID          string       `json:"id"`
	GuildID     string       `json:"guild_id"`
	Content     string       `json:"content"`
	Timestamp   string       `json:"timestamp"`
	Author      *Author      `json:"author"`
	Attachments []Attachment `json:"attachments"`
}

// User is the authenticated bot identity.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Client talks to the Discord REST API with a bot token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// FetchMessages lists up to limit messages of a channel, newest first.
// A non-empty before restricts the listing to messages older than that id,
// which is how pagination walks backwards through a channel.
func (c *Client) FetchMessages(ctx context.Context, channelID, before string, limit int) ([]Message, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if before != "" {
		q.Set("before", before)
	}

	var messages []Message
	endpoint := fmt.Sprintf("%s/channels/%s/messages?%s", c.baseURL, url.PathEscape(channelID), q.Encode())
	if err := c.get(ctx, endpoint, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Me returns the identity behind the configured bot token. Used as a
// connectivity and credential probe.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, c.baseURL+"/users/@me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ingest.UpstreamError{Source: "discord", Status: resp.StatusCode, Body: string(body)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
