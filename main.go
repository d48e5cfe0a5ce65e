package main

import (
	"log"

	api "lifelog-backend/cmd/api"
	discorddomain "lifelog-backend/internal/discord/domain"
	discordRepo "lifelog-backend/internal/discord/repository"
	discordUsecase "lifelog-backend/internal/discord/usecase"
	emaildomain "lifelog-backend/internal/email/domain"
	emailRepo "lifelog-backend/internal/email/repository"
	emailUsecase "lifelog-backend/internal/email/usecase"
	githubdomain "lifelog-backend/internal/github/domain"
	githubRepo "lifelog-backend/internal/github/repository"
	githubUsecase "lifelog-backend/internal/github/usecase"
	"lifelog-backend/pkg/config"
	"lifelog-backend/pkg/database"
	"lifelog-backend/pkg/discord"
	"lifelog-backend/pkg/github"
	"lifelog-backend/pkg/gmail"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&discorddomain.Message{}, &githubdomain.Commit{}, &emaildomain.Email{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	messageRepository := discordRepo.NewMessageRepository(db)
	commitRepository := githubRepo.NewCommitRepository(db)
	emailRepository := emailRepo.NewEmailRepository(db)

	// Initialize source connectors
	discordClient := discord.NewClient(cfg.DiscordBotToken)
	githubClient := github.NewClient(cfg.GitHubToken)
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	// Initialize usecases
	discordUc := discordUsecase.NewDiscordUsecase(messageRepository, discordClient, cfg.DiscordBotToken)
	githubUc := githubUsecase.NewGitHubUsecase(commitRepository, githubClient, cfg.GitHubToken)
	emailUc := emailUsecase.NewEmailUsecase(emailRepository, &api.GmailProvider{Service: gmailService}, cfg.GmailRefreshToken, cfg.EmailWindowDays)

	// Start HTTP server
	handler := api.NewHandler(discordUc, githubUc, emailUc, cfg)
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
