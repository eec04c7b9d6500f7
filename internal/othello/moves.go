package othello

import (
	"slices"
)

// MoveCandidate is a legal destination with every opponent disc it flips.
type MoveCandidate struct {
	Dest  Coord   `json:"dest"`
	Flips []Coord `json:"flips"`
}

// MoveIndex maps each legal destination to its candidate. It is derived from one board and mover.
type MoveIndex map[Coord]MoveCandidate

// Len returns the number of legal moves.
func (m MoveIndex) Len() int {
	return len(m)
}

// IsEmpty checks if there are no legal moves.
func (m MoveIndex) IsEmpty() bool {
	return len(m) == 0
}

// Lookup returns the candidate for a destination, if it is legal.
func (m MoveIndex) Lookup(dest Coord) (MoveCandidate, bool) {
	candidate, ok := m[dest]
	return candidate, ok
}

// Candidates returns all candidates ordered row by row.
func (m MoveIndex) Candidates() []MoveCandidate {
	candidates := make([]MoveCandidate, 0, len(m))
	for _, candidate := range m {
		candidates = append(candidates, candidate)
	}

	slices.SortFunc(candidates, func(a, b MoveCandidate) int {
		return compareCoords(a.Dest, b.Dest)
	})

	return candidates
}

// Destinations returns all legal destinations ordered row by row.
func (m MoveIndex) Destinations() []Coord {
	candidates := m.Candidates()
	dests := make([]Coord, len(candidates))
	for i, candidate := range candidates {
		dests[i] = candidate.Dest
	}
	return dests
}

func compareCoords(a, b Coord) int {
	switch {
	case a.less(b):
		return -1
	case b.less(a):
		return 1
	default:
		return 0
	}
}

// flipSets collects flips per destination while lines are merged.
type flipSets map[Coord]map[Coord]struct{}

func (f flipSets) add(sandwich Sandwich) {
	set, ok := f[sandwich.Dest]
	if !ok {
		set = make(map[Coord]struct{}, len(sandwich.Flips))
		f[sandwich.Dest] = set
	}

	for _, flip := range sandwich.Flips {
		set[flip] = struct{}{}
	}
}

func (f flipSets) index() MoveIndex {
	index := make(MoveIndex, len(f))

	for dest, set := range f {
		flips := make([]Coord, 0, len(set))
		for flip := range set {
			flips = append(flips, flip)
		}
		slices.SortFunc(flips, compareCoords)

		index[dest] = MoveCandidate{Dest: dest, Flips: flips}
	}

	return index
}

// LegalMovesBoth scans the board once and returns the legal moves of black and white.
func LegalMovesBoth(board Board) (MoveIndex, MoveIndex) {
	black := make(flipSets)
	white := make(flipSets)

	for _, line := range scanLines {
		for _, sandwich := range DetectSandwiches(line, board) {
			if sandwich.Mover == BLACK {
				black.add(sandwich)
			} else {
				white.add(sandwich)
			}
		}
	}

	return black.index(), white.index()
}

// LegalMoves returns the legal moves for mover. The index is empty if mover has to pass,
// or if mover is not BLACK or WHITE.
func LegalMoves(board Board, mover Color) MoveIndex {
	black, white := LegalMovesBoth(board)

	switch mover {
	case BLACK:
		return black
	case WHITE:
		return white
	default:
		return MoveIndex{}
	}
}

// HasMoves checks if mover has at least one legal move.
func HasMoves(board Board, mover Color) bool {
	return !LegalMoves(board, mover).IsEmpty()
}
