package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	apiGroup := app.Group("/api")

	// Game routes
	apiGroup.Get("/start", Start)
	apiGroup.Post("/moves", Moves)
	apiGroup.Post("/apply", Apply)
	apiGroup.Post("/cpu-move", CPUMove)

	// Stats routes
	apiGroup.Get("/stats", middleware.AuthOrToken(cfg), GetStats)
}
