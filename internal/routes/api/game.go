package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
)

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// Start returns the standard starting position.
func Start(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.NewStateResponse(othello.NewBoardStart(), othello.NewTurnStateStart()))
}

// Moves lists the legal moves of the mover.
func Moves(c *fiber.Ctx) error {
	var payload models.MovesPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err)
	}

	index := othello.LegalMoves(payload.Board, payload.Mover)
	return c.Status(fiber.StatusOK).JSON(models.NewMovesResponse(index))
}

// Apply plays a move and returns the resulting position.
func Apply(c *fiber.Ctx) error {
	var payload models.ApplyPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err)
	}

	board, turn, err := othello.PlayMove(payload.Board, payload.Mover, *payload.Move)
	if err != nil {
		return badRequest(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewStateResponse(board, turn))
}

// CPUMove picks a move for the mover at the requested tier.
func CPUMove(c *fiber.Ctx) error {
	var payload models.CPUMovePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err)
	}

	selector := c.Locals("selector").(*othello.Selector) //nolint: errcheck

	index := othello.LegalMoves(payload.Board, payload.Mover)
	candidate, err := selector.Select(index, payload.Tier)
	if errors.Is(err, othello.ErrNoMoves) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(candidate)
}
