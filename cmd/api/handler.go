package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	discordUsecase "lifelog-backend/internal/discord/usecase"
	emailUsecase "lifelog-backend/internal/email/usecase"
	githubUsecase "lifelog-backend/internal/github/usecase"
	"lifelog-backend/pkg/config"
	"lifelog-backend/pkg/gmail"
)

type Handler struct {
	discordUsecase discordUsecase.DiscordUsecase
	githubUsecase  githubUsecase.GitHubUsecase
	emailUsecase   emailUsecase.EmailUsecase
	config         *config.Config
}

// GmailProvider adapts pkg/gmail.Service to the email usecase's Provider
// interface; Open narrows the concrete session type to the Mailbox interface.
type GmailProvider struct {
	Service *gmail.Service
}

func (p *GmailProvider) Configured() bool { return p.Service.Configured() }
func (p *GmailProvider) AuthURL() string  { return p.Service.AuthURL() }

func (p *GmailProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.Service.Exchange(ctx, code)
}

func (p *GmailProvider) Open(ctx context.Context, refreshToken string) (emailUsecase.Mailbox, error) {
	return p.Service.Open(ctx, refreshToken)
}

func NewHandler(discordUc discordUsecase.DiscordUsecase, githubUc githubUsecase.GitHubUsecase, emailUc emailUsecase.EmailUsecase, cfg *config.Config) *Handler {
	return &Handler{
		discordUsecase: discordUc,
		githubUsecase:  githubUc,
		emailUsecase:   emailUc,
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.discordUsecase, h.githubUsecase, h.emailUsecase)

	return r.Run(addr)
}
