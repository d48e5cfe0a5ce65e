// Package gmail builds authenticated Gmail API clients from an OAuth2
// refresh token and provides the listing, retrieval and payload helpers used
// by the email sync.
package gmail

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"lifelog-backend/internal/ingest"
)

// ListPageSize is the page size for the message-id listing call.
const ListPageSize = 50

type Service struct {
	oauthConfig *oauth2.Config
}

func NewService(clientID, clientSecret, redirectURI string) *Service {
	return &Service{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailReadonlyScope},
		},
	}
}

// Configured reports whether the OAuth client credentials are present.
func (s *Service) Configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != ""
}

// AuthURL returns the consent URL that yields a refresh token on first
// approval.
func (s *Service) AuthURL() string {
	return s.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an OAuth authorization code for tokens.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return s.oauthConfig.Exchange(ctx, code)
}

// Open creates a Gmail session authorized by refreshToken. The access token
// is minted (and re-minted) by the oauth2 transport as needed.
func (s *Service) Open(ctx context.Context, refreshToken string) (*Mailbox, error) {
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now(), // force an immediate refresh
	}
	client := oauth2.NewClient(ctx, s.oauthConfig.TokenSource(ctx, token))

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}
	return &Mailbox{srv: srv}, nil
}

// Mailbox is one authorized Gmail session.
type Mailbox struct {
	srv *gmail.Service
}

// ListMessageIDs runs the search query to exhaustion, following
// nextPageToken, and returns every matching message id.
func (m *Mailbox) ListMessageIDs(ctx context.Context, query string) ([]string, error) {
	var ids []string

	pageToken := ""
	for {
		call := m.srv.Users.Messages.List("me").Q(query).MaxResults(ListPageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, upstreamErr(err)
		}
		for _, msg := range resp.Messages {
			ids = append(ids, msg.Id)
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return ids, nil
}

// GetMessage fetches one message in full format.
func (m *Mailbox) GetMessage(ctx context.Context, id string) (*gmail.Message, error) {
	msg, err := m.srv.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, upstreamErr(err)
	}
	return msg, nil
}

func upstreamErr(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &ingest.UpstreamError{Source: "gmail", Status: apiErr.Code, Body: apiErr.Message}
	}
	return err
}
