package othello

// minLineLength is the shortest line that can hold a mover disc, an opponent disc and an empty square.
const minLineLength = 3

// Line is an ordered sequence of coordinates, scanned from start to end.
type Line []Coord

var scanLines = buildLines()

// Lines returns every line a legal move search has to scan: rows and columns in both directions,
// and both diagonal families in both directions. Diagonals too short to sandwich anything are left out.
func Lines() []Line {
	lines := make([]Line, len(scanLines))
	for i, line := range scanLines {
		lines[i] = append(Line(nil), line...)
	}
	return lines
}

func buildLines() []Line {
	var lines []Line

	for y := range MaxY {
		lines = appendBothWays(lines, walk(Coord{X: 0, Y: y}, 1, 0))
	}

	for x := range MaxX {
		lines = appendBothWays(lines, walk(Coord{X: x, Y: 0}, 0, 1))
	}

	// Top-left to bottom-right. Start squares run along the top row and the left column.
	for offset := -(MaxY - minLineLength); offset <= MaxX-minLineLength; offset++ {
		start := Coord{X: max(0, offset), Y: max(0, -offset)}
		lines = appendBothWays(lines, walk(start, 1, 1))
	}

	// Top-right to bottom-left. Start squares run along the top row and the right column.
	for offset := -(MaxX - minLineLength); offset <= MaxY-minLineLength; offset++ {
		start := Coord{X: MaxX - 1 + min(0, offset), Y: max(0, offset)}
		lines = appendBothWays(lines, walk(start, -1, 1))
	}

	return lines
}

// walk collects coordinates from start in direction (dx, dy) until it leaves the board.
func walk(start Coord, dx, dy int) Line {
	var line Line
	for c := start; c.IsValid(); c = (Coord{X: c.X + dx, Y: c.Y + dy}) {
		line = append(line, c)
	}
	return line
}

func appendBothWays(lines []Line, line Line) []Line {
	reversed := make(Line, len(line))
	for i, c := range line {
		reversed[len(line)-1-i] = c
	}
	return append(lines, line, reversed)
}
