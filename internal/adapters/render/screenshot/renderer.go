// Package screenshot renders fortune cards to PNG with a headless Chrome.
package screenshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/randomtoy/sensoji-go/internal/adapters/render/card"
	"github.com/randomtoy/sensoji-go/internal/domain"
	"github.com/randomtoy/sensoji-go/internal/ports"
)

const closeTimeout = 5 * time.Second

// Renderer implements ports.ImageRenderer. The browser is started on the
// first Render call and reused until Close.
type Renderer struct {
	bin     string
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRenderer returns a Renderer. An empty bin lets the launcher look for a
// locally installed Chrome.
func NewRenderer(bin string, timeout time.Duration, logger *slog.Logger) *Renderer {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{bin: bin, timeout: timeout, logger: logger}
}

func (r *Renderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return r.browser, nil
	}

	bin := r.bin
	if bin == "" {
		found, ok := launcher.LookPath()
		if !ok {
			return nil, fmt.Errorf("%w: no chrome binary found", domain.ErrRenderUnavailable)
		}
		bin = found
	}

	controlURL, err := launcher.New().Bin(bin).Headless(true).Leakless(false).Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch chrome: %w", domain.ErrRenderUnavailable, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connect to chrome: %w", domain.ErrRenderUnavailable, err)
	}
	r.logger.Info("headless browser started", "bin", bin)
	r.browser = browser
	return browser, nil
}

func (r *Renderer) Render(ctx context.Context, o domain.ParsedOracle) (ports.Image, error) {
	doc, err := card.HTML(ctx, o)
	if err != nil {
		return ports.Image{}, err
	}

	browser, err := r.connect()
	if err != nil {
		return ports.Image{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return ports.Image{}, fmt.Errorf("%w: open page: %w", domain.ErrRender, err)
	}
	defer r.closePage(page)

	if err := page.SetDocumentContent(doc); err != nil {
		return ports.Image{}, fmt.Errorf("%w: set content: %w", domain.ErrRender, err)
	}
	if err := page.WaitLoad(); err != nil {
		return ports.Image{}, fmt.Errorf("%w: wait load: %w", domain.ErrRender, err)
	}

	el, err := page.Element(".container")
	if err != nil {
		return ports.Image{}, fmt.Errorf("%w: find card: %w", domain.ErrRender, err)
	}
	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return ports.Image{}, fmt.Errorf("%w: screenshot: %w", domain.ErrRender, err)
	}

	return ports.Image{ContentType: "image/png", Data: png}, nil
}

// closePage closes page on its own context so a render that ran out of
// time still releases its tab.
func (r *Renderer) closePage(page *rod.Page) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := page.Context(ctx).Close(); err != nil {
		r.logger.Warn("close render page", "error", err)
	}
}

// Close shuts the browser down if it was started.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}
