package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/sensoji-go/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.ImageMode)
	assert.InDelta(t, 0.4, cfg.StallProbability, 1e-9)
	assert.Equal(t, 15*time.Second, cfg.RenderTimeout)
	assert.Empty(t, cfg.CorpusPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SENSOJI_HTTP_ADDR", ":9090")
	t.Setenv("SENSOJI_LOG_LEVEL", "DEBUG")
	t.Setenv("SENSOJI_IMAGE_MODE", "true")
	t.Setenv("SENSOJI_STALL_PROBABILITY", "0")
	t.Setenv("SENSOJI_CORPUS_PATH", "/srv/fortunes.yaml")
	t.Setenv("SENSOJI_RENDER_TIMEOUT", "3s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.ImageMode)
	assert.Zero(t, cfg.StallProbability)
	assert.Equal(t, "/srv/fortunes.yaml", cfg.CorpusPath)
	assert.Equal(t, 3*time.Second, cfg.RenderTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"SENSOJI_LOG_LEVEL":         "loud",
		"SENSOJI_STALL_PROBABILITY": "1",
		"SENSOJI_IMAGE_MODE":        "maybe",
		"SENSOJI_RENDER_TIMEOUT":    "soon",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
