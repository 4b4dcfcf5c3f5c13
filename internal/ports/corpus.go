package ports

import (
	"context"

	"github.com/randomtoy/sensoji-go/internal/domain"
)

// Corpus provides the fixed set of fortune texts.
type Corpus interface {
	// Pick returns one fortune chosen uniformly at random.
	Pick(ctx context.Context, rng domain.RNG) (domain.RawText, error)
}
