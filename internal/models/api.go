package models

import (
	"errors"
	"fmt"

	"github.com/lk16/reversi/internal/othello"
)

// MovesPayload represents a request for the legal moves of a position.
type MovesPayload struct {
	Board othello.Board `json:"board"`
	Mover othello.Color `json:"mover"`
}

// Validate validates the moves payload.
func (p *MovesPayload) Validate() error {
	if !p.Mover.IsPlayer() {
		return othello.ErrInvalidColor
	}
	return nil
}

// MovesResponse lists legal moves ordered row by row.
type MovesResponse struct {
	Moves []othello.MoveCandidate `json:"moves"`
}

// NewMovesResponse creates a MovesResponse from an index.
func NewMovesResponse(index othello.MoveIndex) MovesResponse {
	return MovesResponse{Moves: index.Candidates()}
}

var ErrMissingMove = errors.New("move field is missing")

// ApplyPayload represents a request to play a move.
type ApplyPayload struct {
	Board othello.Board  `json:"board"`
	Mover othello.Color  `json:"mover"`
	Move  *othello.Coord `json:"move"`
}

// Validate validates the apply payload.
func (p *ApplyPayload) Validate() error {
	if !p.Mover.IsPlayer() {
		return othello.ErrInvalidColor
	}
	if p.Move == nil {
		return ErrMissingMove
	}
	return nil
}

// CPUMovePayload represents a request for a CPU move.
type CPUMovePayload struct {
	Board othello.Board `json:"board"`
	Mover othello.Color `json:"mover"`
	Tier  othello.Tier  `json:"tier"`
}

// Validate validates the cpu move payload.
func (p *CPUMovePayload) Validate() error {
	if !p.Mover.IsPlayer() {
		return othello.ErrInvalidColor
	}
	if !p.Tier.IsValid() {
		return fmt.Errorf("%w: %d", othello.ErrUnknownTier, p.Tier)
	}
	return nil
}

// StateResponse describes a position after a move, or at the start of a game.
type StateResponse struct {
	Board  othello.Board     `json:"board"`
	Turn   othello.TurnState `json:"turn"`
	Black  int               `json:"black"`
	White  int               `json:"white"`
	Winner *othello.Color    `json:"winner,omitempty"`
}

// NewStateResponse creates a StateResponse. Winner is only set once the game is over.
func NewStateResponse(board othello.Board, turn othello.TurnState) StateResponse {
	black, white := board.StoneCounts()

	state := StateResponse{
		Board: board,
		Turn:  turn,
		Black: black,
		White: white,
	}

	if !turn.Playing {
		winner := othello.Winner(board)
		state.Winner = &winner
	}

	return state
}

// GameResult is the outcome of a finished game played through a websocket session.
type GameResult struct {
	// Tier is the CPU tier, or 0 when both players were human.
	Tier     othello.Tier
	CPUColor othello.Color
	Winner   othello.Color
}

// Validate validates the game result.
func (r *GameResult) Validate() error {
	if r.Tier != 0 && !r.Tier.IsValid() {
		return fmt.Errorf("%w: %d", othello.ErrUnknownTier, r.Tier)
	}
	if r.Tier == 0 && r.CPUColor != othello.EMPTY {
		return errors.New("cpu color set without cpu tier")
	}
	if r.Tier != 0 && !r.CPUColor.IsPlayer() {
		return errors.New("cpu tier set without cpu color")
	}
	return nil
}

// GameStat counts finished games with the same tier, cpu color and winner.
type GameStat struct {
	Tier     othello.Tier  `json:"tier"`
	CPUColor othello.Color `json:"cpu_color"`
	Winner   othello.Color `json:"winner"`
	Count    int           `json:"count"`
}

// StatsResponse represents the response for game statistics.
type StatsResponse struct {
	GamesPlayed int        `json:"games_played"`
	Stats       []GameStat `json:"stats"`
}

type VersionResponse struct {
	Commit string `json:"commit"`
}
