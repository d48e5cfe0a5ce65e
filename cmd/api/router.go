package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	discordDelivery "lifelog-backend/internal/discord/delivery"
	discordUsecase "lifelog-backend/internal/discord/usecase"
	emailDelivery "lifelog-backend/internal/email/delivery"
	emailUsecase "lifelog-backend/internal/email/usecase"
	githubDelivery "lifelog-backend/internal/github/delivery"
	githubUsecase "lifelog-backend/internal/github/usecase"
)

func SetupRoutes(r *gin.Engine, discordUc discordUsecase.DiscordUsecase, githubUc githubUsecase.GitHubUsecase, emailUc emailUsecase.EmailUsecase) {
	discordHandler := discordDelivery.NewDiscordHandler(discordUc)
	githubHandler := githubDelivery.NewGitHubHandler(githubUc)
	emailHandler := emailDelivery.NewEmailHandler(emailUc)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Discord routes
		discord := api.Group("/discord")
		{
			discord.GET("/ping", discordHandler.Ping)
			discord.GET("/whoami", discordHandler.Whoami)
			discord.GET("/fetch", discordHandler.Fetch)
			discord.GET("/messages", discordHandler.Messages)
		}

		// GitHub routes
		github := api.Group("/github")
		{
			github.GET("/repos", githubHandler.Repos)
			github.GET("/fetch", githubHandler.Fetch)
			github.GET("/commits", githubHandler.Commits)
		}

		// Gmail routes
		emails := api.Group("/emails")
		{
			emails.GET("/auth-url", emailHandler.AuthURL)
			emails.GET("/oauth2callback", emailHandler.OAuth2Callback)
			emails.GET("/fetch", emailHandler.Fetch)
			emails.GET("/fetch-sent", emailHandler.FetchSent)
			emails.GET("/list", emailHandler.Emails)
		}
	}
}
