package ports

import (
	"context"

	"github.com/randomtoy/sensoji-go/internal/domain"
)

// Image is a rendered fortune card.
type Image struct {
	ContentType string
	Data        []byte
}

// ImageRenderer turns a parsed fortune into an image. Implementations return
// an error wrapping domain.ErrRenderUnavailable when no rendering backend exists.
type ImageRenderer interface {
	Render(ctx context.Context, oracle domain.ParsedOracle) (Image, error)
}
