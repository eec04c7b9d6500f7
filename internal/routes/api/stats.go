package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/repository"
)

// GetStats returns the counters of finished websocket games.
func GetStats(c *fiber.Ctx) error {
	repo := repository.NewGameStatsRepository(c)
	stats, err := repo.GetStats(c.Context())
	if errors.Is(err, repository.ErrNoRedis) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
