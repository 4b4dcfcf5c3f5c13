package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/randomtoy/sensoji-go/internal/adapters/corpus"
	"github.com/randomtoy/sensoji-go/internal/adapters/render/screenshot"
	"github.com/randomtoy/sensoji-go/internal/app"
	"github.com/randomtoy/sensoji-go/internal/config"
	"github.com/randomtoy/sensoji-go/internal/domain"
	"github.com/randomtoy/sensoji-go/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int    { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

// rng feeds every draw; tests swap it for a fixed source.
var rng domain.RNG = stdRNG{}

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and reports any failure on its stderr.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		logger.Error("sensoji failed", "error", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	var cfg config.Config

	root := &cobra.Command{
		Use:           "sensoji",
		Short:         "Draw a Sensoji temple fortune",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("stall") {
				stall, _ := flags.GetFloat64("stall")
				if _, err := domain.NewGate(stall); err != nil {
					return fmt.Errorf("invalid --stall: %w", err)
				}
				loaded.StallProbability = stall
			}
			if flags.Changed("image") {
				loaded.ImageMode, _ = flags.GetBool("image")
			}
			if flags.Changed("corpus") {
				loaded.CorpusPath, _ = flags.GetString("corpus")
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().Float64("stall", domain.DefaultStallProbability, "probability that the ceremony withholds a stick")
	root.PersistentFlags().Bool("image", false, "render fortunes as images")
	root.PersistentFlags().String("corpus", "", "YAML corpus file replacing the built-in fortunes")

	root.AddCommand(newDrawCmd(&cfg), newServeCmd(&cfg))
	return root
}

// buildService wires the fortune service from configuration.
func buildService(cfg config.Config, logger *slog.Logger) (*app.FortuneService, *screenshot.Renderer, error) {
	gate, err := domain.NewGate(cfg.StallProbability)
	if err != nil {
		return nil, nil, fmt.Errorf("gate: %w", err)
	}

	store := corpus.NewEmbeddedStore()
	if cfg.CorpusPath != "" {
		store = corpus.NewFileStore(cfg.CorpusPath)
	}

	var renderer *screenshot.Renderer
	if cfg.ImageMode {
		renderer = screenshot.NewRenderer(cfg.BrowserBin, cfg.RenderTimeout, logger)
	}

	svc := app.NewFortuneService(store, imageRenderer(renderer), rng, gate, domain.NewSegmenter(), logger)
	return svc, renderer, nil
}

// imageRenderer avoids handing the service a typed nil.
func imageRenderer(r *screenshot.Renderer) ports.ImageRenderer {
	if r == nil {
		return nil
	}
	return r
}
