package screenshot_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/sensoji-go/internal/adapters/render/screenshot"
	"github.com/randomtoy/sensoji-go/internal/domain"
)

var oracle = domain.ParsedOracle{
	Verdict:     "吉",
	PoemLines:   [4]string{"月被浮云翳", "立事自昏迷", "幸乞阴公佑", "何虑不开眉"},
	Annotations: []domain.Annotation{{Key: "愿望", Value: "耐心等待则会实现"}},
}

func TestRender_MissingBrowserIsUnavailable(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "no-such-chrome")
	r := screenshot.NewRenderer(bin, time.Second, slog.Default())
	defer r.Close()

	_, err := r.Render(context.Background(), oracle)
	assert.ErrorIs(t, err, domain.ErrRenderUnavailable)
}

func TestRender_PNG(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a local chrome")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no chrome installed")
	}

	r := screenshot.NewRenderer(bin, 30*time.Second, slog.Default())
	defer r.Close()

	img, err := r.Render(context.Background(), oracle)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, bytes.HasPrefix(img.Data, []byte("\x89PNG")))
}
