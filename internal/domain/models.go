package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// RawText is one fortune exactly as stored in the corpus.
type RawText string

// Annotation is a "key：value" guidance line such as 学业：宜专注.
type Annotation struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ExplanationBlock is one explanation paragraph. Subtitle is empty when no
// caption line preceded the body.
type ExplanationBlock struct {
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
}

// ParsedOracle is the structured form of a RawText.
type ParsedOracle struct {
	Verdict           string             `json:"verdict"`
	PoemLines         [4]string          `json:"poem_lines"`
	Annotations       []Annotation       `json:"annotations"`
	ExplanationBlocks []ExplanationBlock `json:"explanation_blocks"`
}

// OutcomeKind tags an Outcome.
type OutcomeKind string

const (
	OutcomeStalled OutcomeKind = "stalled"
	OutcomeEmpty   OutcomeKind = "empty"
	OutcomeDrawn   OutcomeKind = "drawn"
)

// Outcome is the result of one draw. Message is set for Stalled and Empty.
// A Drawn outcome always carries Raw; Oracle is set only in structured mode.
type Outcome struct {
	Kind    OutcomeKind   `json:"kind"`
	Message string        `json:"message,omitempty"`
	Raw     RawText       `json:"raw,omitempty"`
	Oracle  *ParsedOracle `json:"oracle,omitempty"`
}

// Stalled reports whether the ceremony withheld the stick.
func (o Outcome) Stalled() bool { return o.Kind == OutcomeStalled }

// Empty reports whether the blank draw came up.
func (o Outcome) Empty() bool { return o.Kind == OutcomeEmpty }

// Drawn reports whether a fortune was produced.
func (o Outcome) Drawn() bool { return o.Kind == OutcomeDrawn }
