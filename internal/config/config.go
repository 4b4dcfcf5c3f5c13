package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr         string        `env:"SENSOJI_HTTP_ADDR"         envDefault:":8080"`
	LogLevelName     string        `env:"SENSOJI_LOG_LEVEL"         envDefault:"info"`
	ImageMode        bool          `env:"SENSOJI_IMAGE_MODE"        envDefault:"false"`
	StallProbability float64       `env:"SENSOJI_STALL_PROBABILITY" envDefault:"0.4"`
	CorpusPath       string        `env:"SENSOJI_CORPUS_PATH"`
	BrowserBin       string        `env:"SENSOJI_BROWSER_BIN"`
	RenderTimeout    time.Duration `env:"SENSOJI_RENDER_TIMEOUT"    envDefault:"15s"`

	LogLevel slog.Level
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and resolves LogLevel from LogLevelName.
func (c *Config) Validate() error {
	level, err := ParseLogLevel(c.LogLevelName)
	if err != nil {
		return err
	}
	c.LogLevel = level

	if c.StallProbability < 0 || c.StallProbability >= 1 {
		return fmt.Errorf("invalid SENSOJI_STALL_PROBABILITY %v: must be in [0, 1)", c.StallProbability)
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("invalid SENSOJI_RENDER_TIMEOUT %s", c.RenderTimeout)
	}
	return nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid SENSOJI_LOG_LEVEL %q", s)
	}
}
