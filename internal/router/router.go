package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/courseloop/forum-gateway/internal/handlers"
	"github.com/courseloop/forum-gateway/internal/middleware"
	"github.com/courseloop/forum-gateway/internal/moderation"
	"github.com/courseloop/forum-gateway/internal/recent"
	"github.com/courseloop/forum-gateway/internal/upstream"
	"github.com/courseloop/forum-gateway/internal/viewstate"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestID())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, store upstream.Store, recents *recent.RedisStore, views *viewstate.RedisStore, jwtSecret string) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	engine := moderation.New(store)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// Forum routes
	forumHandler := handlers.NewForumHandler(store, engine, recents)
	forumHandler.RegisterForumRoutes(api)
	log.Println("Forum routes configured.")

	// Post and thread routes
	postHandler := handlers.NewPostHandler(store, engine, views)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Reaction routes
	reactionHandler := handlers.NewReactionHandler(store)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	// Moderation routes
	moderationHandler := handlers.NewModerationHandler(store, engine)
	moderationHandler.RegisterModerationRoutes(api)
	log.Println("Moderation routes configured.")

	// Recent forum routes
	recentHandler := handlers.NewRecentHandler(recents)
	recentHandler.RegisterRecentRoutes(api)
	log.Println("Recent forum routes configured.")

	log.Println("All routes configured.")
}
