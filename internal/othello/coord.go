package othello

import (
	"errors"
	"fmt"
	"strings"
)

var ErrOutOfRange = errors.New("coordinate out of range")

// Coord is a square on the board: X is the column (a-h), Y is the row (1-8).
type Coord struct {
	X int
	Y int
}

// NewCoord creates a coordinate and rejects anything off the board.
func NewCoord(x, y int) (Coord, error) {
	c := Coord{X: x, Y: y}
	if !c.IsValid() {
		return Coord{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, x, y)
	}
	return c, nil
}

// ParseCoord converts field notation (e.g. "a1", "h8") to a coordinate.
func ParseCoord(field string) (Coord, error) {
	if len(field) != 2 {
		return Coord{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Coord{}, fmt.Errorf("invalid field: %q", field)
	}

	return Coord{X: int(field[0] - 'a'), Y: int(field[1] - '1')}, nil
}

// ParseCoordMust works like ParseCoord but panics on invalid input.
func ParseCoordMust(field string) Coord {
	c, err := ParseCoord(field)
	if err != nil {
		panic(err)
	}
	return c
}

// IsValid checks if the coordinate is on the board.
func (c Coord) IsValid() bool {
	return c.X >= 0 && c.X < MaxX && c.Y >= 0 && c.Y < MaxY
}

// IsCorner checks if the coordinate is one of a1, h1, a8 or h8.
func (c Coord) IsCorner() bool {
	return (c.X == 0 || c.X == MaxX-1) && (c.Y == 0 || c.Y == MaxY-1)
}

// IsCornerAdjacent checks if the coordinate borders a corner (the C- and X-squares).
func (c Coord) IsCornerAdjacent() bool {
	if c.IsCorner() {
		return false
	}
	nearX := c.X <= 1 || c.X >= MaxX-2
	nearY := c.Y <= 1 || c.Y >= MaxY-2
	return nearX && nearY
}

// less orders coordinates row by row.
func (c Coord) less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// String returns the field notation, or "??" when off the board.
func (c Coord) String() string {
	if !c.IsValid() {
		return "??"
	}
	return string([]byte{byte('a' + c.X), byte('1' + c.Y)})
}

// MarshalText implements encoding.TextMarshaler.
func (c Coord) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, c.X, c.Y)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Coord) UnmarshalText(text []byte) error {
	coord, err := ParseCoord(string(text))
	if err != nil {
		return err
	}
	*c = coord
	return nil
}
