package othello

import (
	"errors"
	"fmt"
	"strings"
)

var ErrGameOver = errors.New("game is over")

// Snapshot is one entry of the game history.
type Snapshot struct {
	Board Board
	Turn  TurnState

	// Move is the move that led to this snapshot. It is nil for the start position.
	Move *Coord
}

// Game represents a Reversi game, either complete or in progress.
type Game struct {
	// history contains the start snapshot followed by one snapshot per move.
	history []Snapshot

	// step is the index in history of the snapshot currently shown.
	// Playing a move while step is not the last index drops the snapshots after it.
	step int
}

// NewGameWithStart creates a new game from a custom start board with given player to move.
func NewGameWithStart(start Board, mover Color) *Game {
	turn := TurnState{Next: mover, Passed: EMPTY, Playing: true}

	if !HasMoves(start, mover) {
		switch {
		case HasMoves(start, mover.Opponent()):
			turn = TurnState{Next: mover.Opponent(), Passed: mover, Playing: true}
		default:
			turn = TurnState{Next: NONE, Passed: EMPTY, Playing: false}
		}
	}

	return &Game{
		history: []Snapshot{{Board: start, Turn: turn}},
	}
}

// NewGame creates a new game from the starting position.
func NewGame() *Game {
	return NewGameWithStart(NewBoardStart(), BLACK)
}

// NewGameFromMoves creates a new game and plays all moves. Passes are handled automatically.
func NewGameFromMoves(moves []Coord) (*Game, error) {
	game := NewGame()

	for i, move := range moves {
		if _, err := game.Play(move); err != nil {
			return nil, fmt.Errorf("failed to play move %d (%s): %w", i+1, move, err)
		}
	}

	return game, nil
}

// ParseMoves parses a transcript such as "f5 d6 c3" or "1. f5 d6 2. c3".
// Words starting with a digit are move numbers and are skipped.
func ParseMoves(transcript string) ([]Coord, error) {
	moves := make([]Coord, 0)

	for _, word := range strings.Fields(transcript) {
		if word[0] >= '0' && word[0] <= '9' {
			continue
		}

		move, err := ParseCoord(word)
		if err != nil {
			return nil, fmt.Errorf("failed to parse move %s: %w", word, err)
		}

		moves = append(moves, move)
	}

	return moves, nil
}

// Current returns the snapshot at the current step.
func (g *Game) Current() Snapshot {
	return g.history[g.step]
}

// Board returns the board at the current step.
func (g *Game) Board() Board {
	return g.Current().Board
}

// Turn returns the turn state at the current step.
func (g *Game) Turn() TurnState {
	return g.Current().Turn
}

// IsOver checks if the game at the current step has ended.
func (g *Game) IsOver() bool {
	return !g.Turn().Playing
}

// Step returns the index of the current snapshot.
func (g *Game) Step() int {
	return g.step
}

// Len returns the number of snapshots, including the start position.
func (g *Game) Len() int {
	return len(g.history)
}

// History returns a copy of all snapshots.
func (g *Game) History() []Snapshot {
	return append([]Snapshot(nil), g.history...)
}

// LegalMoves returns the legal moves for the player to move at the current step.
func (g *Game) LegalMoves() MoveIndex {
	turn := g.Turn()
	if !turn.Playing {
		return MoveIndex{}
	}
	return LegalMoves(g.Board(), turn.Next)
}

// Play plays dest for the player to move. Illegal moves leave the game unchanged.
func (g *Game) Play(dest Coord) (TurnState, error) {
	current := g.Current()
	if !current.Turn.Playing {
		return current.Turn, ErrGameOver
	}

	board, turn, err := PlayMove(current.Board, current.Turn.Next, dest)
	if err != nil {
		return current.Turn, err
	}

	g.push(board, turn, dest)
	return turn, nil
}

// PlayCPU lets selector pick a move for the player to move and plays it.
func (g *Game) PlayCPU(selector *Selector, tier Tier) (Coord, TurnState, error) {
	current := g.Current()
	if !current.Turn.Playing {
		return Coord{}, current.Turn, ErrGameOver
	}

	candidate, err := selector.Select(LegalMoves(current.Board, current.Turn.Next), tier)
	if err != nil {
		return Coord{}, current.Turn, fmt.Errorf("failed to select cpu move: %w", err)
	}

	board, turn, err := ApplyMove(current.Board, current.Turn.Next, candidate)
	if err != nil {
		return Coord{}, current.Turn, err
	}

	g.push(board, turn, candidate.Dest)
	return candidate.Dest, turn, nil
}

// push drops any snapshots after the current step and appends a new one.
func (g *Game) push(board Board, turn TurnState, move Coord) {
	g.history = append(g.history[:g.step+1], Snapshot{Board: board, Turn: turn, Move: &move})
	g.step = len(g.history) - 1
}

// JumpTo moves the current step inside the history. Later snapshots are kept until the next move.
func (g *Game) JumpTo(step int) error {
	if step < 0 || step >= len(g.history) {
		return fmt.Errorf("step %d out of range [0,%d]", step, len(g.history)-1)
	}
	g.step = step
	return nil
}

// Moves returns the moves leading to the current step.
func (g *Game) Moves() []Coord {
	moves := make([]Coord, 0, g.step)
	for _, snapshot := range g.history[1 : g.step+1] {
		moves = append(moves, *snapshot.Move)
	}
	return moves
}

// String returns the moves leading to the current step in field notation.
func (g *Game) String() string {
	moves := g.Moves()
	words := make([]string, len(moves))
	for i, move := range moves {
		words[i] = move.String()
	}
	return strings.Join(words, " ")
}
