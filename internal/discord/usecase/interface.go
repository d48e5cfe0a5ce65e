package usecase

import (
	"context"

	discorddomain "lifelog-backend/internal/discord/domain"
	discorddto "lifelog-backend/internal/discord/dto"
	"lifelog-backend/internal/ingest"
	"lifelog-backend/pkg/discord"
)

// Connector is the slice of the Discord client the usecase depends on.
type Connector interface {
	FetchMessages(ctx context.Context, channelID, before string, limit int) ([]discord.Message, error)
	Me(ctx context.Context) (*discord.User, error)
}

// DiscordUsecase defines the interface for Discord message aggregation
type DiscordUsecase interface {
	// FetchAndStore runs one paginated fetch of a channel and upserts every
	// message for the requesting user
	FetchAndStore(ctx context.Context, req discorddto.FetchRequest) (ingest.Counters, error)
	// Whoami probes the configured bot token against the Discord API
	Whoami(ctx context.Context) (*discord.User, error)
	// ListMessages returns stored messages for a user, newest first
	ListMessages(userID string, limit, offset int) ([]discorddomain.Message, int64, error)
}
