package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/randomtoy/sensoji-go/internal/domain"
	"github.com/randomtoy/sensoji-go/internal/ports"
)

// Mode selects how a drawn fortune is returned.
type Mode string

const (
	// ModePlain returns the raw fortune text untouched.
	ModePlain Mode = "plain"
	// ModeStructured parses the fortune into a ParsedOracle.
	ModeStructured Mode = "structured"
	// ModeImage parses the fortune and renders it as an image.
	ModeImage Mode = "image"
)

// DrawRequest is the application-level input (no HTTP types).
type DrawRequest struct {
	Mode Mode
}

// DrawResponse is the application-level output. Image is set only when
// ModeImage was requested and rendering succeeded.
type DrawResponse struct {
	Outcome domain.Outcome
	Image   *ports.Image
}

// FortuneService runs the draw: gate, corpus pick, segmentation, rendering.
type FortuneService struct {
	corpus    ports.Corpus
	renderer  ports.ImageRenderer
	rng       domain.RNG
	gate      domain.Gate
	segmenter domain.Segmenter
	logger    *slog.Logger
}

// NewFortuneService wires the service. renderer may be nil, in which case
// image requests fall back to raw text.
func NewFortuneService(c ports.Corpus, r ports.ImageRenderer, rng domain.RNG, gate domain.Gate, seg domain.Segmenter, logger *slog.Logger) *FortuneService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FortuneService{
		corpus:    c,
		renderer:  r,
		rng:       rng,
		gate:      gate,
		segmenter: seg,
		logger:    logger,
	}
}

func (s *FortuneService) Draw(ctx context.Context, req DrawRequest) (DrawResponse, error) {
	out, proceed, err := s.gate.Admit(s.rng)
	if err != nil {
		return DrawResponse{}, fmt.Errorf("admit: %w", err)
	}
	if !proceed {
		s.logger.DebugContext(ctx, "no stick drawn", "outcome", out.Kind)
		return DrawResponse{Outcome: out}, nil
	}

	raw, err := s.corpus.Pick(ctx, s.rng)
	if err != nil {
		return DrawResponse{}, fmt.Errorf("pick fortune: %w", err)
	}
	out = domain.Outcome{Kind: domain.OutcomeDrawn, Raw: raw}

	if req.Mode == ModePlain || req.Mode == "" {
		return DrawResponse{Outcome: out}, nil
	}

	oracle, err := s.segmenter.Parse(raw)
	if err != nil {
		return DrawResponse{}, fmt.Errorf("parse fortune: %w", err)
	}
	out.Oracle = &oracle

	if req.Mode != ModeImage {
		return DrawResponse{Outcome: out}, nil
	}

	if s.renderer == nil {
		s.logger.WarnContext(ctx, "image renderer not configured, returning text")
		return DrawResponse{Outcome: domain.Outcome{Kind: domain.OutcomeDrawn, Raw: raw}}, nil
	}

	img, err := s.renderer.Render(ctx, oracle)
	if errors.Is(err, domain.ErrRenderUnavailable) {
		s.logger.WarnContext(ctx, "image renderer unavailable, returning text", "error", err)
		return DrawResponse{Outcome: domain.Outcome{Kind: domain.OutcomeDrawn, Raw: raw}}, nil
	}
	if err != nil {
		return DrawResponse{}, fmt.Errorf("render fortune: %w", err)
	}

	return DrawResponse{Outcome: out, Image: &img}, nil
}
