package ws

import (
	"context"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	services := c.Locals("services").(*services.Services) //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck
	selector := c.Locals("selector").(*othello.Selector)  //nolint: errcheck

	var recorder ws.ResultRecorder
	if services.Redis != nil {
		recorder = repository.NewGameStatsRepositoryFromServices(services)
	}

	session := ws.NewSession(selector, recorder, cfg.CPUDelay)

	// Handle cancels this context itself once the client disconnects
	h := ws.NewHandler(c, session)
	err := h.Handle(context.Background())
	if err != nil {
		slog.Debug("ws handle error", "session", session.ID(), "error", err)
	}
}

// upgradeRequired rejects plain HTTP requests to the websocket endpoint.
func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", upgradeRequired, websocket.New(handleWs))
}
