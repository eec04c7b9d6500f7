package othello

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidColor = errors.New("mover must be black or white")
)

// TurnState describes who moves next after a move was applied.
type TurnState struct {
	// Next is the player to move, or NONE when the game is over.
	Next Color `json:"next"`

	// Passed is the player that was skipped because it had no moves, or EMPTY.
	Passed Color `json:"passed"`

	// Playing is false once neither player can move.
	Playing bool `json:"playing"`
}

// NewTurnStateStart returns the turn state of a new game.
func NewTurnStateStart() TurnState {
	return TurnState{Next: BLACK, Passed: EMPTY, Playing: true}
}

// HasPass checks if a player was skipped.
func (t TurnState) HasPass() bool {
	return t.Passed != EMPTY
}

// ApplyMove places a disc for mover and flips the candidate's discs. The candidate must come from
// LegalMoves(board, mover); it is not validated again. The returned TurnState is the only place where
// turn order, passes and game end are decided.
func ApplyMove(board Board, mover Color, candidate MoveCandidate) (Board, TurnState, error) {
	if !mover.IsPlayer() {
		return board, TurnState{}, fmt.Errorf("%w: got %s", ErrInvalidColor, mover)
	}

	if !candidate.Dest.IsValid() {
		return board, TurnState{}, fmt.Errorf("%w: destination (%d,%d)", ErrOutOfRange, candidate.Dest.X, candidate.Dest.Y)
	}

	for _, flip := range candidate.Flips {
		if !flip.IsValid() {
			return board, TurnState{}, fmt.Errorf("%w: flip (%d,%d)", ErrOutOfRange, flip.X, flip.Y)
		}
	}

	next := board.withSquare(candidate.Dest, mover)
	for _, flip := range candidate.Flips {
		next = next.withSquare(flip, mover)
	}

	return next, nextTurn(next, mover), nil
}

// nextTurn decides who moves after mover played on board.
func nextTurn(board Board, mover Color) TurnState {
	black, white := LegalMovesBoth(board)

	opponentMoves, moverMoves := white, black
	if mover == WHITE {
		opponentMoves, moverMoves = black, white
	}

	if !opponentMoves.IsEmpty() {
		return TurnState{Next: mover.Opponent(), Passed: EMPTY, Playing: true}
	}

	if !moverMoves.IsEmpty() {
		return TurnState{Next: mover, Passed: mover.Opponent(), Playing: true}
	}

	return TurnState{Next: NONE, Passed: EMPTY, Playing: false}
}

// PlayMove validates dest against the legal moves of mover and applies it.
// An illegal destination returns ErrIllegalMove and the unchanged board.
func PlayMove(board Board, mover Color, dest Coord) (Board, TurnState, error) {
	if !mover.IsPlayer() {
		return board, TurnState{}, fmt.Errorf("%w: got %s", ErrInvalidColor, mover)
	}

	if !dest.IsValid() {
		return board, TurnState{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, dest.X, dest.Y)
	}

	candidate, ok := LegalMoves(board, mover).Lookup(dest)
	if !ok {
		return board, TurnState{}, fmt.Errorf("%w: %s cannot play %s", ErrIllegalMove, mover, dest)
	}

	return ApplyMove(board, mover, candidate)
}

// Winner returns the color with most discs, or EMPTY for a draw.
func Winner(board Board) Color {
	black, white := board.StoneCounts()
	switch {
	case black > white:
		return BLACK
	case white > black:
		return WHITE
	default:
		return EMPTY
	}
}

// FinalScore returns black discs minus white discs.
func FinalScore(board Board) int {
	black, white := board.StoneCounts()
	return black - white
}
