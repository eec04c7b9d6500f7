package othello

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFromRows builds a board from up to 8 rows of 'B', 'W' and '.'. Missing rows are empty.
func boardFromRows(t *testing.T, rows ...string) Board {
	t.Helper()

	require.LessOrEqual(t, len(rows), MaxY)

	var b Board
	for y, row := range rows {
		require.Len(t, row, MaxX, "row %d", y)

		for x, square := range row {
			switch square {
			case 'B':
				b.cells[y][x] = BLACK
			case 'W':
				b.cells[y][x] = WHITE
			case '.':
			default:
				t.Fatalf("invalid square %q in row %d", square, y)
			}
		}
	}
	return b
}

func coords(fields ...string) []Coord {
	result := make([]Coord, len(fields))
	for i, field := range fields {
		result[i] = ParseCoordMust(field)
	}
	return result
}

// bruteForceFlips walks the 8 directions from dest, the way a straightforward implementation would.
func bruteForceFlips(b Board, mover Color, dest Coord) map[Coord]bool {
	flips := make(map[Coord]bool)

	if b.GetSquare(dest) != EMPTY {
		return flips
	}

	directions := [8][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	for _, dir := range directions {
		var run []Coord
		c := Coord{X: dest.X + dir[0], Y: dest.Y + dir[1]}

		for c.IsValid() && b.GetSquare(c) == mover.Opponent() {
			run = append(run, c)
			c = Coord{X: c.X + dir[0], Y: c.Y + dir[1]}
		}

		if c.IsValid() && b.GetSquare(c) == mover && len(run) > 0 {
			for _, flip := range run {
				flips[flip] = true
			}
		}
	}

	return flips
}
