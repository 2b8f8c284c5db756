package router

import (
	"fmt"
	"log/slog"

	"github.com/anonto42/socially/internal/handlers"
	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/invalidation"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/repositories"
	"github.com/anonto42/socially/internal/services"
	"github.com/anonto42/socially/internal/validators"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Deps are the process-level dependencies routes are wired from.
type Deps struct {
	DB        *gorm.DB
	Verifier  identity.Verifier
	Publisher invalidation.Publisher
	Logger    *slog.Logger
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *slog.Logger) {
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	logger.Debug("global middleware configured")
}

// SetupRoutes migrates the schema and registers every route
func SetupRoutes(e *echo.Echo, deps Deps) error {
	if err := repositories.Migrate(deps.DB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	deps.Logger.Info("database migrations completed")

	publisher := deps.Publisher
	if publisher == nil {
		publisher = invalidation.NewDispatcher(deps.Logger)
	}
	logger := deps.Logger

	// --- Services ---
	store := repositories.NewStore(deps.DB)
	resolver := identity.NewResolver(store.Users, logger)
	profileService := services.NewProfileService(store, publisher, logger)
	feedService := services.NewFeedService(store, logger)

	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.DB).HealthCheck)

	// Every /api/v1 route sees the verified caller when a token is sent;
	// mutating routes additionally require one.
	api := e.Group("/api/v1")
	api.Use(middleware.Authenticate(deps.Verifier))

	handlers.NewAuthHandler(resolver, profileService).RegisterAuthRoutes(api)
	handlers.NewUserHandler(profileService, feedService, resolver).RegisterProfileRoutes(api)
	handlers.NewFeedHandler(feedService, resolver).RegisterFeedRoutes(api)
	handlers.NewPostHandler(services.NewPostService(store, publisher, logger), resolver).RegisterPostRoutes(api)
	handlers.NewCommentHandler(services.NewCommentService(store, publisher, logger), resolver).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(services.NewLikeService(store, publisher, logger), resolver).RegisterLikeRoutes(api)
	handlers.NewFollowHandler(services.NewFollowService(store, publisher, logger), profileService, resolver).RegisterFollowRoutes(api)
	handlers.NewNotificationHandler(services.NewNotificationService(store, publisher, logger), resolver).RegisterNotificationRoutes(api)

	logger.Info("routes configured", slog.Int("count", len(e.Routes())))
	return nil
}
