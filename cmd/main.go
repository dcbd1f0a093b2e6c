/*
Package main is the entry point for the Learnly server.

It loads configuration, initializes the global logging system, connects to
PostgreSQL and applies migrations, wires the stores, chat hub, and message
router into the HTTP routing table, and gracefully handles operating system
interrupt signals (SIGINT, SIGTERM) for a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnly/internal/app/chat"
	"learnly/internal/app/comment"
	"learnly/internal/app/db"
	"learnly/internal/app/group"
	"learnly/internal/app/identity"
	"learnly/internal/app/like"
	"learnly/internal/app/message"
	"learnly/internal/app/plan"
	"learnly/internal/app/post"
	"learnly/internal/app/progress"
	"learnly/internal/app/storage"
	"learnly/internal/app/user"
	"learnly/internal/configs"
	"learnly/internal/handler"
	"learnly/internal/pkg/auth/oauth"
	"learnly/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL and apply migrations
	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize database")
	}
	defer pool.Close()

	// Initialize the S3-compatible media storage
	storageService, err := storage.NewStorageService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize storage service")
	}

	// Wire the stores, the chat hub, and the message router
	users := user.NewStore(pool)
	groups := group.NewStore(pool)
	messages := message.NewStore(pool)

	hub := chat.NewHub()
	router := chat.NewRouter(hub, users, groups, messages)

	deps := &handler.AppDeps{
		Config:         cfg,
		Hub:            hub,
		Router:         router,
		Users:          users,
		Groups:         groups,
		Posts:          post.NewStore(pool),
		Comments:       comment.NewStore(pool),
		Likes:          like.NewStore(pool),
		Plans:          plan.NewStore(pool),
		Progress:       progress.NewStore(pool),
		StorageService: storageService,
		Providers:      buildProviders(cfg),
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Learnly Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}

// buildProviders registers the OAuth2 provider adapters the server was given
// credentials for. Callback URLs are derived from the public base URL.
func buildProviders(cfg *configs.AppConfig) map[identity.Provider]oauth.Provider {
	providers := make(map[identity.Provider]oauth.Provider)

	if cfg.GoogleClientID != "" {
		providers[identity.ProviderGoogle] = oauth.NewGoogle(oauth.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.PublicBaseURL + "/api/auth/google/callback",
		})
	}

	if cfg.GitHubClientID != "" {
		providers[identity.ProviderGitHub] = oauth.NewGitHub(oauth.Config{
			ClientID:     cfg.GitHubClientID,
			ClientSecret: cfg.GitHubClientSecret,
			RedirectURL:  cfg.PublicBaseURL + "/api/auth/github/callback",
		})
	}

	if len(providers) == 0 {
		logx.Warn("No OAuth providers configured. Sign-in is unavailable.")
	}

	return providers
}
