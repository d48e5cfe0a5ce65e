package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	emaildomain "lifelog-backend/internal/email/domain"
	emaildto "lifelog-backend/internal/email/dto"
	"lifelog-backend/internal/email/repository"
	"lifelog-backend/internal/ingest"
	"lifelog-backend/pkg/gmail"
)

// DefaultUserID owns records fetched without an explicit user.
const DefaultUserID = "default"

type emailUsecase struct {
	repo                repository.EmailRepository
	provider            Provider
	defaultRefreshToken string
	defaultWindowDays   int
}

func NewEmailUsecase(repo repository.EmailRepository, provider Provider, defaultRefreshToken string, defaultWindowDays int) EmailUsecase {
	if defaultWindowDays <= 0 {
		defaultWindowDays = 30
	}
	return &emailUsecase{
		repo:                repo,
		provider:            provider,
		defaultRefreshToken: defaultRefreshToken,
		defaultWindowDays:   defaultWindowDays,
	}
}

func (u *emailUsecase) FetchAndStore(ctx context.Context, req emaildto.FetchRequest) (ingest.Counters, error) {
	// Validate before the first network call
	if !u.provider.Configured() {
		return ingest.Counters{}, &ingest.ConfigError{Name: "GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET"}
	}
	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken = u.defaultRefreshToken
	}
	if refreshToken == "" {
		return ingest.Counters{}, &ingest.ConfigError{Name: "GMAIL_REFRESH_TOKEN"}
	}

	userID := req.UserID
	if userID == "" {
		userID = DefaultUserID
	}
	query := req.OverrideQuery
	if query == "" {
		days := req.Days
		if days <= 0 {
			days = u.defaultWindowDays
		}
		query = fmt.Sprintf("newer_than:%dd", days)
	}

	mailbox, err := u.provider.Open(ctx, refreshToken)
	if err != nil {
		return ingest.Counters{}, err
	}

	log.Printf("[gmail] fetching with query: %s", query)

	// Phase one: the search is paginated to exhaustion up front, because the
	// API separates search from retrieval.
	ids, err := mailbox.ListMessageIDs(ctx, query)
	if err != nil {
		return ingest.Counters{}, err
	}

	fetchedAt := time.Now()

	// Phase two: serve the id list in batches; each item is fetched in full
	// during processing so that one broken message is counted, not fatal.
	source := ingest.SourceFunc[string](func(_ context.Context, cursor string, pageSize int) ([]string, string, error) {
		start := 0
		if cursor != "" {
			parsed, err := strconv.Atoi(cursor)
			if err != nil {
				return nil, "", err
			}
			start = parsed
		}
		if start >= len(ids) {
			return nil, "", nil
		}
		end := start + pageSize
		if end > len(ids) {
			end = len(ids)
		}
		return ids[start:end], strconv.Itoa(end), nil
	})

	process := func(ctx context.Context, id string) error {
		msg, err := mailbox.GetMessage(ctx, id)
		if err != nil {
			return err
		}
		return u.repo.Upsert(normalizeEmail(msg, userID, fetchedAt))
	}

	counters, err := ingest.Run(ctx, "gmail", source, process, ingest.Options{
		MaxItems: req.Limit,
		PageSize: gmail.ListPageSize,
	})
	if err != nil {
		return counters, err
	}

	log.Printf("[gmail] done: requested=%d success=%d failed=%d", counters.Requested, counters.Success, counters.Failed)
	return counters, nil
}

func (u *emailUsecase) AuthURL() (string, error) {
	if !u.provider.Configured() {
		return "", &ingest.ConfigError{Name: "GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET"}
	}
	return u.provider.AuthURL(), nil
}

func (u *emailUsecase) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if !u.provider.Configured() {
		return nil, &ingest.ConfigError{Name: "GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET"}
	}
	return u.provider.Exchange(ctx, code)
}

func (u *emailUsecase) ListEmails(userID string, limit, offset int) ([]emaildomain.Email, int64, error) {
	return u.repo.ListByUser(userID, limit, offset)
}
