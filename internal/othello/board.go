package othello

import (
	"fmt"
	"strconv"
)

const (
	MaxX = 8
	MaxY = 8
)

// Color is the state of a single square, or the identity of a player.
type Color int

const (
	EMPTY Color = iota
	BLACK
	WHITE

	// NONE is used as next mover when the game is over.
	NONE = EMPTY
)

// Opponent returns the other player. EMPTY has no opponent and is returned as-is.
func (c Color) Opponent() Color {
	switch c {
	case BLACK:
		return WHITE
	case WHITE:
		return BLACK
	default:
		return EMPTY
	}
}

// IsPlayer checks if the color is BLACK or WHITE.
func (c Color) IsPlayer() bool {
	return c == BLACK || c == WHITE
}

func (c Color) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	default:
		return "empty"
	}
}

// ParseColor parses "black", "white" or "empty"/"none".
func ParseColor(s string) (Color, error) {
	switch s {
	case "black", "b":
		return BLACK, nil
	case "white", "w":
		return WHITE, nil
	case "empty", "none", "":
		return EMPTY, nil
	default:
		return EMPTY, fmt.Errorf("invalid color: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	color, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = color
	return nil
}

// Board is an 8x8 grid of squares. It is a value type: copies never share cells.
type Board struct {
	cells [MaxY][MaxX]Color
}

// NewBoardStart creates a new board with the starting position.
func NewBoardStart() Board {
	b := NewBoardEmpty()
	b.cells[3][3] = WHITE
	b.cells[4][4] = WHITE
	b.cells[4][3] = BLACK
	b.cells[3][4] = BLACK
	return b
}

// NewBoardEmpty creates a board without any discs.
func NewBoardEmpty() Board {
	return Board{}
}

// NewBoardFromString creates a new board from a string representation.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != 32 {
		return Board{}, fmt.Errorf("board string must be 32 characters long, got %d", len(s))
	}

	black, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid black discs: %w", err)
	}

	white, err := strconv.ParseUint(s[16:], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid white discs: %w", err)
	}

	if black&white != 0 {
		return Board{}, fmt.Errorf("invalid board: black and white discs cannot overlap")
	}

	b := NewBoardEmpty()
	for index := range MaxX * MaxY {
		mask := uint64(1) << index
		switch {
		case black&mask != 0:
			b.cells[index/MaxX][index%MaxX] = BLACK
		case white&mask != 0:
			b.cells[index/MaxX][index%MaxX] = WHITE
		}
	}

	return b, nil
}

// GetSquare returns the color at the given coordinate. It panics if the coordinate is off the board.
func (b Board) GetSquare(c Coord) Color {
	if !c.IsValid() {
		panic(fmt.Sprintf("coordinate out of range: (%d,%d)", c.X, c.Y))
	}
	return b.cells[c.Y][c.X]
}

// withSquare returns a copy of the board with one square changed.
func (b Board) withSquare(c Coord, color Color) Board {
	b.cells[c.Y][c.X] = color
	return b
}

// StoneCounts returns the number of black and white discs.
func (b Board) StoneCounts() (int, int) {
	black, white := 0, 0
	for y := range MaxY {
		for x := range MaxX {
			switch b.cells[y][x] {
			case BLACK:
				black++
			case WHITE:
				white++
			}
		}
	}
	return black, white
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	black, white := b.StoneCounts()
	return black + white
}

// bitboards returns the black and white discs as bitsets, index = y*8+x.
func (b Board) bitboards() (uint64, uint64) {
	var black, white uint64
	for y := range MaxY {
		for x := range MaxX {
			mask := uint64(1) << (y*MaxX + x)
			switch b.cells[y][x] {
			case BLACK:
				black |= mask
			case WHITE:
				white |= mask
			}
		}
	}
	return black, white
}

// ASCIIArtLines returns the ascii art lines for the board. Squares in moves are marked with a dot.
func (b Board) ASCIIArtLines(moves MoveIndex) []string {
	lines := make([]string, MaxY+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for y := range MaxY {
		line := fmt.Sprintf("%d ", y+1)

		for x := range MaxX {
			_, isMove := moves[Coord{X: x, Y: y}]

			switch {
			case b.cells[y][x] == WHITE:
				line += "○ "
			case b.cells[y][x] == BLACK:
				line += "● "
			case isMove:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[y+1] = line + "|"
	}

	lines[9] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print() {
	for _, line := range b.ASCIIArtLines(nil) {
		fmt.Println(line)
	}
}

// String returns the string representation of the board.
func (b Board) String() string {
	black, white := b.bitboards()
	return fmt.Sprintf("%016x%016x", black, white)
}

// MarshalText implements encoding.TextMarshaler.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Board) UnmarshalText(text []byte) error {
	board, err := NewBoardFromString(string(text))
	if err != nil {
		return err
	}
	*b = board
	return nil
}
