package othello

// Sandwich is a destination found on a single line, with the opponent discs it encloses on that line.
type Sandwich struct {
	Mover Color
	Dest  Coord
	Flips []Coord
}

// runState tracks how far a [mover][opponent]+[empty] pattern has progressed.
type runState int

const (
	// runIdle means no mover disc precedes the current square.
	runIdle runState = iota

	// runAnchored means the previous square holds a mover disc.
	runAnchored

	// runFlanking means a mover disc is followed by one or more opponent discs.
	runFlanking
)

// runTracker finds sandwiches for one mover while scanning a line.
type runTracker struct {
	mover   Color
	state   runState
	pending []Coord
}

func newRunTracker(mover Color) *runTracker {
	return &runTracker{mover: mover, state: runIdle}
}

// step feeds the next square of the line. It returns a sandwich when square c is an empty landing spot.
func (t *runTracker) step(c Coord, color Color) (Sandwich, bool) {
	switch color {
	case t.mover:
		t.state = runAnchored
		t.pending = nil

	case t.mover.Opponent():
		if t.state == runIdle {
			return Sandwich{}, false
		}
		t.state = runFlanking
		t.pending = append(t.pending, c)

	default:
		found := t.state == runFlanking
		sandwich := Sandwich{Mover: t.mover, Dest: c, Flips: t.pending}

		t.state = runIdle
		t.pending = nil

		if found {
			return sandwich, true
		}
	}

	return Sandwich{}, false
}

// DetectSandwiches scans one line once and returns every empty square that closes a
// [mover][opponent]+ run, for both colors at the same time.
func DetectSandwiches(line Line, board Board) []Sandwich {
	var sandwiches []Sandwich

	trackers := [2]*runTracker{newRunTracker(BLACK), newRunTracker(WHITE)}

	for _, c := range line {
		color := board.GetSquare(c)

		for _, tracker := range trackers {
			if sandwich, ok := tracker.step(c, color); ok {
				sandwiches = append(sandwiches, sandwich)
			}
		}
	}

	return sandwiches
}
