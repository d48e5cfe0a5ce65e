package usecase

import (
	"context"
	"time"

	discorddomain "lifelog-backend/internal/discord/domain"
	discorddto "lifelog-backend/internal/discord/dto"
	"lifelog-backend/internal/discord/repository"
	"lifelog-backend/internal/ingest"
	"lifelog-backend/pkg/discord"
)

const (
	// DefaultPages bounds a run when the caller does not say otherwise.
	DefaultPages = 3
	// DefaultPerPage is the page size used when none is requested.
	DefaultPerPage = 100
)

type discordUsecase struct {
	repo      repository.MessageRepository
	connector Connector
	hasToken  bool
}

func NewDiscordUsecase(repo repository.MessageRepository, connector Connector, botToken string) DiscordUsecase {
	return &discordUsecase{
		repo:      repo,
		connector: connector,
		hasToken:  botToken != "",
	}
}

func (u *discordUsecase) FetchAndStore(ctx context.Context, req discorddto.FetchRequest) (ingest.Counters, error) {
	// Validate before the first network call
	if !u.hasToken {
		return ingest.Counters{}, &ingest.ConfigError{Name: "DISCORD_BOT_TOKEN"}
	}
	if req.UserID == "" {
		return ingest.Counters{}, &ingest.ConfigError{Name: "userId"}
	}
	if req.ChannelID == "" {
		return ingest.Counters{}, &ingest.ConfigError{Name: "channelId"}
	}

	pages := req.Pages
	if pages <= 0 {
		pages = DefaultPages
	}
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	fetchedAt := time.Now()

	// Pages walk backwards through the channel: the cursor is the id of the
	// oldest message on the previous page.
	source := ingest.SourceFunc[discord.Message](func(ctx context.Context, cursor string, pageSize int) ([]discord.Message, string, error) {
		msgs, err := u.connector.FetchMessages(ctx, req.ChannelID, cursor, pageSize)
		if err != nil {
			return nil, "", err
		}
		if len(msgs) == 0 {
			return nil, "", nil
		}
		return msgs, msgs[len(msgs)-1].ID, nil
	})

	return ingest.Run(ctx, "discord", source, func(_ context.Context, m discord.Message) error {
		return u.repo.Upsert(normalizeMessage(m, req.UserID, req.ChannelID, fetchedAt))
	}, ingest.Options{MaxPages: pages, PageSize: perPage})
}

func (u *discordUsecase) Whoami(ctx context.Context) (*discord.User, error) {
	if !u.hasToken {
		return nil, &ingest.ConfigError{Name: "DISCORD_BOT_TOKEN"}
	}
	return u.connector.Me(ctx)
}

func (u *discordUsecase) ListMessages(userID string, limit, offset int) ([]discorddomain.Message, int64, error) {
	return u.repo.ListByUser(userID, limit, offset)
}
