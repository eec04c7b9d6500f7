package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/routes"
	"github.com/lk16/reversi/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
)

// SetupApp loads the configuration, connects to Redis and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig, *services.Services) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	app := BuildApp(cfg, services, othello.NewSelectorRandom())

	return app, cfg, services
}

// BuildApp creates the Fiber app. Services without a Redis client disable the stats.
func BuildApp(cfg *config.ServerConfig, services *services.Services, selector *othello.Selector) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		c.Locals("selector", selector)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app, cfg)

	return app
}
