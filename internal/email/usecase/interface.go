package usecase

import (
	"context"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"

	emaildomain "lifelog-backend/internal/email/domain"
	emaildto "lifelog-backend/internal/email/dto"
	"lifelog-backend/internal/ingest"
)

// Mailbox is one authorized Gmail session: a two-phase listing (search to
// exhaustion, then per-id retrieval).
type Mailbox interface {
	ListMessageIDs(ctx context.Context, query string) ([]string, error)
	GetMessage(ctx context.Context, id string) (*gmailapi.Message, error)
}

// Provider opens mailbox sessions and handles the OAuth consent flow.
type Provider interface {
	Configured() bool
	AuthURL() string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Open(ctx context.Context, refreshToken string) (Mailbox, error)
}

// EmailUsecase defines the interface for Gmail message aggregation
type EmailUsecase interface {
	// FetchAndStore runs one Gmail search-and-fetch and upserts every
	// message for the requesting user
	FetchAndStore(ctx context.Context, req emaildto.FetchRequest) (ingest.Counters, error)
	// AuthURL returns the OAuth consent URL
	AuthURL() (string, error)
	// Exchange trades an authorization code for tokens
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// ListEmails returns stored emails for a user, newest first
	ListEmails(userID string, limit, offset int) ([]emaildomain.Email, int64, error)
}
