package ws

import (
	"encoding/json"

	"github.com/lk16/reversi/internal/othello"
)

const (
	EventNewGame = "new_game"
	EventMove    = "move"

	EventState = "state"
	EventError = "error"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID    int    `json:"id"`
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NewGameRequest starts a new game. CPUColor is "black", "white", "random" or "none".
// Board optionally replaces the start position, Mover is who moves first on it and defaults to black.
type NewGameRequest struct {
	Tier     othello.Tier   `json:"tier"`
	CPUColor string         `json:"cpu_color"`
	Board    *othello.Board `json:"board,omitempty"`
	Mover    othello.Color  `json:"mover,omitempty"`
}

type MoveRequest struct {
	Move *othello.Coord `json:"move"`
}

// GameState is sent after every change to the game.
type GameState struct {
	SessionID string            `json:"session_id"`
	Board     othello.Board     `json:"board"`
	Turn      othello.TurnState `json:"turn"`
	Black     int               `json:"black"`
	White     int               `json:"white"`
	Step      int               `json:"step"`
	LastMove  *othello.Coord    `json:"last_move,omitempty"`
	Moves     []othello.Coord   `json:"moves"`
	CPUColor  othello.Color     `json:"cpu_color"`
	Tier      othello.Tier      `json:"tier"`
	Winner    *othello.Color    `json:"winner,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
