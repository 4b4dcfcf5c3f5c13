package domain

import "fmt"

const (
	// DefaultStallProbability is the chance the ceremony withholds a stick.
	DefaultStallProbability = 0.4

	// BlankThreshold: verdict draws in [1, BlankThreshold) are blank draws.
	BlankThreshold = 5

	verdictRange = 100

	StallMessage = "签筒摇了摇，签没有掉出来，再诚心摇一次吧"
	BlankMessage = "是空签呢（据说这是把凶签留在了寺里，是好事哦）"
)

// Gate is the two-stage admission check run before a stick is drawn.
// It holds no state between calls.
type Gate struct {
	StallProbability float64
}

// NewGate returns a Gate with the given stall probability, which must lie in [0, 1).
func NewGate(stall float64) (Gate, error) {
	if stall < 0 || stall >= 1 {
		return Gate{}, fmt.Errorf("stall probability %v outside [0, 1)", stall)
	}
	return Gate{StallProbability: stall}, nil
}

// Admit runs the ceremony check and the verdict draw. It returns the terminal
// outcome and false when no stick is produced, or a zero Outcome and true when
// the caller should pick a fortune from the corpus.
func (g Gate) Admit(rng RNG) (Outcome, bool, error) {
	if rng == nil {
		return Outcome{}, false, ErrNoRandomSource
	}

	if rng.Float64() < g.StallProbability {
		return Outcome{Kind: OutcomeStalled, Message: StallMessage}, false, nil
	}

	if 1+rng.Intn(verdictRange) < BlankThreshold {
		return Outcome{Kind: OutcomeEmpty, Message: BlankMessage}, false, nil
	}

	return Outcome{}, true, nil
}
