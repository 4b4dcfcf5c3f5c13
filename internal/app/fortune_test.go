package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/randomtoy/sensoji-go/internal/app"
	"github.com/randomtoy/sensoji-go/internal/domain"
	"github.com/randomtoy/sensoji-go/internal/ports"
)

const sampleText = "大吉\n风和日丽\n百花齐放\n心诚则灵\n终有所成\n终有所成\n此句应验于秋\n学业：宜专注"

type mockCorpus struct {
	text  domain.RawText
	err   error
	calls atomic.Int32
}

func (m *mockCorpus) Pick(_ context.Context, _ domain.RNG) (domain.RawText, error) {
	m.calls.Add(1)
	return m.text, m.err
}

type mockRenderer struct {
	img ports.Image
	err error
}

func (m *mockRenderer) Render(_ context.Context, _ domain.ParsedOracle) (ports.Image, error) {
	return m.img, m.err
}

// fixedRNG always returns the same draws; it is safe for concurrent use.
type fixedRNG struct {
	f float64
	n int
}

func (r fixedRNG) Float64() float64 { return r.f }
func (r fixedRNG) Intn(n int) int    { return r.n % n }

// countingRNG records verdict draws.
type countingRNG struct {
	fixedRNG
	intCalls int
}

func (r *countingRNG) Intn(n int) int {
	r.intCalls++
	return r.fixedRNG.Intn(n)
}

var proceedRNG = fixedRNG{f: 0.99, n: 50}

func newService(t *testing.T, c ports.Corpus, r ports.ImageRenderer, rng domain.RNG) *app.FortuneService {
	t.Helper()
	gate, err := domain.NewGate(0.4)
	require.NoError(t, err)
	return app.NewFortuneService(c, r, rng, gate, domain.NewSegmenter(), nil)
}

func TestDraw_PlainReturnsRawText(t *testing.T) {
	c := &mockCorpus{text: sampleText}
	svc := newService(t, c, nil, proceedRNG)

	resp, err := svc.Draw(context.Background(), app.DrawRequest{Mode: app.ModePlain})
	require.NoError(t, err)

	assert.True(t, resp.Outcome.Drawn())
	assert.Equal(t, domain.RawText(sampleText), resp.Outcome.Raw)
	assert.Nil(t, resp.Outcome.Oracle)
	assert.Nil(t, resp.Image)
}

func TestDraw_Structured(t *testing.T) {
	svc := newService(t, &mockCorpus{text: sampleText}, nil, proceedRNG)

	resp, err := svc.Draw(context.Background(), app.DrawRequest{Mode: app.ModeStructured})
	require.NoError(t, err)
	require.NotNil(t, resp.Outcome.Oracle)

	o := resp.Outcome.Oracle
	assert.Equal(t, "大吉", o.Verdict)
	assert.Equal(t, []domain.ExplanationBlock{{Subtitle: "终有所成", Body: "此句应验于秋"}}, o.ExplanationBlocks)
	assert.Equal(t, []domain.Annotation{{Key: "学业", Value: "宜专注"}}, o.Annotations)
}

func TestDraw_EmptyDrawSkipsCorpus(t *testing.T) {
	c := &mockCorpus{text: sampleText}
	// Intn(100) == 2 gives a verdict value of 3.
	svc := newService(t, c, nil, fixedRNG{f: 0.99, n: 2})

	resp, err := svc.Draw(context.Background(), app.DrawRequest{Mode: app.ModeStructured})
	require.NoError(t, err)

	assert.True(t, resp.Outcome.Empty())
	assert.Equal(t, domain.BlankMessage, resp.Outcome.Message)
	assert.Zero(t, c.calls.Load())
}

func TestDraw_StallSkipsVerdictDraw(t *testing.T) {
	c := &mockCorpus{text: sampleText}
	rng := &countingRNG{fixedRNG: fixedRNG{f: 0.1, n: 50}}
	svc := newService(t, c, nil, rng)

	resp, err := svc.Draw(context.Background(), app.DrawRequest{})
	require.NoError(t, err)

	assert.True(t, resp.Outcome.Stalled())
	assert.Zero(t, rng.intCalls)
	assert.Zero(t, c.calls.Load())
}

func TestDraw_Image(t *testing.T) {
	r := &mockRenderer{img: ports.Image{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}}
	svc := newService(t, &mockCorpus{text: sampleText}, r, proceedRNG)

	resp, err := svc.Draw(context.Background(), app.DrawRequest{Mode: app.ModeImage})
	require.NoError(t, err)
	require.NotNil(t, resp.Image)
	assert.Equal(t, "image/png", resp.Image.ContentType)
	assert.NotNil(t, resp.Outcome.Oracle)
}

func TestDraw_ImageFallsBackToText(t *testing.T) {
	tests := []struct {
		name     string
		renderer ports.ImageRenderer
	}{
		{"no renderer", nil},
		{"unavailable", &mockRenderer{err: domain.ErrRenderUnavailable}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, &mockCorpus{text: sampleText}, tt.renderer, proceedRNG)

			resp, err := svc.Draw(context.Background(), app.DrawRequest{Mode: app.ModeImage})
			require.NoError(t, err)
			assert.Nil(t, resp.Image)
			assert.Nil(t, resp.Outcome.Oracle)
			assert.Equal(t, domain.RawText(sampleText), resp.Outcome.Raw)
		})
	}
}

func TestDraw_Errors(t *testing.T) {
	tests := []struct {
		name     string
		corpus   *mockCorpus
		renderer ports.ImageRenderer
		mode     app.Mode
		want     error
	}{
		{"corpus empty", &mockCorpus{err: domain.ErrCorpusEmpty}, nil, app.ModePlain, domain.ErrCorpusEmpty},
		{"short text", &mockCorpus{text: "大吉\n风和日丽"}, nil, app.ModeStructured, domain.ErrInvalidOracleText},
		{"render failure", &mockCorpus{text: sampleText}, &mockRenderer{err: domain.ErrRender}, app.ModeImage, domain.ErrRender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.corpus, tt.renderer, proceedRNG)
			_, err := svc.Draw(context.Background(), app.DrawRequest{Mode: tt.mode})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDraw_NoRandomSource(t *testing.T) {
	gate, _ := domain.NewGate(0)
	svc := app.NewFortuneService(&mockCorpus{text: sampleText}, nil, nil, gate, domain.NewSegmenter(), nil)

	_, err := svc.Draw(context.Background(), app.DrawRequest{})
	assert.True(t, errors.Is(err, domain.ErrNoRandomSource))
}

func TestDraw_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := &mockCorpus{text: sampleText}
	svc := newService(t, c, nil, proceedRNG)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Draw(context.Background(), app.DrawRequest{Mode: app.ModeStructured})
			assert.NoError(t, err)
			assert.True(t, resp.Outcome.Drawn())
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 32, c.calls.Load())
}
