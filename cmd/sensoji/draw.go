package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randomtoy/sensoji-go/internal/adapters/render/card"
	"github.com/randomtoy/sensoji-go/internal/adapters/render/plain"
	"github.com/randomtoy/sensoji-go/internal/app"
	"github.com/randomtoy/sensoji-go/internal/config"
)

func newDrawCmd(cfg *config.Config) *cobra.Command {
	var (
		format string
		output string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Shake the container once and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "text", "json", "html":
			default:
				return fmt.Errorf("invalid --format %q: must be text, json or html", format)
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))

			svc, renderer, err := buildService(*cfg, logger)
			if err != nil {
				return err
			}
			if renderer != nil {
				defer renderer.Close()
			}

			mode := app.ModeStructured
			if raw {
				mode = app.ModePlain
			}
			if cfg.ImageMode {
				mode = app.ModeImage
			}

			resp, err := svc.Draw(cmd.Context(), app.DrawRequest{Mode: mode})
			if err != nil {
				return fmt.Errorf("draw: %w", err)
			}
			out := resp.Outcome
			w := cmd.OutOrStdout()

			switch {
			case resp.Image != nil:
				if err := os.WriteFile(output, resp.Image.Data, 0o644); err != nil {
					return fmt.Errorf("write image: %w", err)
				}
				_, err = fmt.Fprintln(w, output)
				return err
			case format == "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case format == "html" && out.Oracle != nil:
				return card.Page(*out.Oracle).Render(cmd.Context(), w)
			default:
				return plain.Write(w, out)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or html")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the fortune text without parsing it")
	cmd.Flags().StringVarP(&output, "output", "o", "fortune.png", "image file written in image mode")
	return cmd
}
