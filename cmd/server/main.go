package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/courseloop/forum-gateway/internal/recent"
	"github.com/courseloop/forum-gateway/internal/router"
	"github.com/courseloop/forum-gateway/internal/upstream"
	"github.com/courseloop/forum-gateway/internal/viewstate"
	"github.com/courseloop/forum-gateway/pkg/config"
	"github.com/courseloop/forum-gateway/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize Redis (recency tracker + view-state windows)
	redisClient, err := config.InitRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	recents := recent.NewRedisStoreWithClient(redisClient)
	views := viewstate.NewRedisStoreWithClient(redisClient)

	// Upstream forum store client
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, store, recents, views, cfg.JWTSecret)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
