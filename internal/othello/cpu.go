package othello

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

var (
	ErrNoMoves     = errors.New("no legal moves to select from")
	ErrUnknownTier = errors.New("unknown cpu tier")
)

// Tier is the CPU difficulty level.
type Tier int

const (
	// TierRandom picks any legal move.
	TierRandom Tier = 1

	// TierHeuristic takes corners, avoids squares next to corners, and otherwise plays randomly.
	TierHeuristic Tier = 2
)

// ParseTier parses "1" or "2".
func ParseTier(s string) (Tier, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid tier %q: %w", s, err)
	}

	tier := Tier(n)
	if !tier.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownTier, n)
	}

	return tier, nil
}

// IsValid checks if the tier is known.
func (t Tier) IsValid() bool {
	return t == TierRandom || t == TierHeuristic
}

// Selector picks CPU moves. It is safe for concurrent use.
type Selector struct {
	rng      *rand.Rand
	rngMutex sync.Mutex
}

// NewSelector creates a selector with a fixed seed, so results can be reproduced.
func NewSelector(seed uint64) *Selector {
	return &Selector{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewSelectorRandom creates a selector seeded from the clock.
func NewSelectorRandom() *Selector {
	return NewSelector(uint64(time.Now().UnixNano()))
}

func (s *Selector) intn(n int) int {
	s.rngMutex.Lock()
	defer s.rngMutex.Unlock()

	return s.rng.Intn(n)
}

// Select returns one candidate from index. The caller must handle passes and game end first:
// an empty index returns ErrNoMoves.
func (s *Selector) Select(index MoveIndex, tier Tier) (MoveCandidate, error) {
	return selectCandidate(index, tier, s.intn)
}

// CoinFlip returns true or false with equal chance.
func (s *Selector) CoinFlip() bool {
	return s.intn(2) == 0
}

func selectCandidate(index MoveIndex, tier Tier, intn func(int) int) (MoveCandidate, error) {
	if index.IsEmpty() {
		return MoveCandidate{}, ErrNoMoves
	}

	candidates := index.Candidates()

	switch tier {
	case TierRandom:
		return candidates[intn(len(candidates))], nil
	case TierHeuristic:
		return selectHeuristic(candidates, intn), nil
	default:
		return MoveCandidate{}, fmt.Errorf("%w: %d", ErrUnknownTier, tier)
	}
}

func selectHeuristic(candidates []MoveCandidate, intn func(int) int) MoveCandidate {
	var corners, safe []MoveCandidate

	for _, candidate := range candidates {
		switch {
		case candidate.Dest.IsCorner():
			corners = append(corners, candidate)
		case !candidate.Dest.IsCornerAdjacent():
			safe = append(safe, candidate)
		}
	}

	if len(corners) > 0 {
		return corners[intn(len(corners))]
	}

	if len(safe) > 0 {
		return safe[intn(len(safe))]
	}

	return candidates[intn(len(candidates))]
}
