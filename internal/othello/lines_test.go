package othello

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	lines := Lines()

	// 8 rows + 8 columns + 2*11 diagonals, each in both directions
	require.Len(t, lines, 76)

	for i, line := range lines {
		require.GreaterOrEqual(t, len(line), minLineLength, "line %d", i)

		for _, c := range line {
			require.True(t, c.IsValid(), "line %d has %v", i, c)
		}

		// consecutive squares are neighbours in one fixed direction
		dx, dy := line[1].X-line[0].X, line[1].Y-line[0].Y
		require.LessOrEqual(t, abs(dx), 1)
		require.LessOrEqual(t, abs(dy), 1)
		for j := 1; j < len(line); j++ {
			require.Equal(t, dx, line[j].X-line[j-1].X)
			require.Equal(t, dy, line[j].Y-line[j-1].Y)
		}
	}
}

func TestLines_BothDirections(t *testing.T) {
	lines := Lines()

	for i := 0; i < len(lines); i += 2 {
		forward, backward := lines[i], lines[i+1]
		require.Len(t, backward, len(forward))
		for j := range forward {
			require.Equal(t, forward[j], backward[len(backward)-1-j])
		}
	}
}

func TestLines_Coverage(t *testing.T) {
	seen := make(map[Coord]int)
	for _, line := range Lines() {
		for _, c := range line {
			seen[c]++
		}
	}

	require.Len(t, seen, MaxX*MaxY)

	// a corner lies on its row, its column and one long diagonal
	require.Equal(t, 6, seen[Coord{X: 0, Y: 0}])

	// center squares lie on a row, a column and two diagonals
	require.Equal(t, 8, seen[Coord{X: 3, Y: 3}])

	// b1 lies on a diagonal of length 2 which is skipped
	require.Equal(t, 6, seen[Coord{X: 1, Y: 0}])
}

func TestLines_ReturnsCopy(t *testing.T) {
	lines := Lines()
	lines[0][0] = Coord{X: 7, Y: 7}

	require.Equal(t, Coord{X: 0, Y: 0}, Lines()[0][0])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
