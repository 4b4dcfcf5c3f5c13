package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/randomtoy/sensoji-go/internal/adapters/render/card"
	"github.com/randomtoy/sensoji-go/internal/app"
	"github.com/randomtoy/sensoji-go/internal/domain"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"
	formatPNG  = "png"
)

type Handler struct {
	svc           *app.FortuneService
	defaultFormat string
	page          func(domain.ParsedOracle) templ.Component
}

// NewHandler returns a Handler. With imageMode set, requests that do not
// name a format get a PNG card; otherwise they get the raw text.
func NewHandler(svc *app.FortuneService, imageMode bool) *Handler {
	f := formatText
	if imageMode {
		f = formatPNG
	}
	return &Handler{svc: svc, defaultFormat: f, page: card.Page}
}

// WithPage replaces the HTML card component.
func (h *Handler) WithPage(page func(domain.ParsedOracle) templ.Component) *Handler {
	h.page = page
	return h
}

// renderPage renders the whole card before anything is written, so a failure
// can still become an error response.
func (h *Handler) renderPage(ctx context.Context, o domain.ParsedOracle) ([]byte, error) {
	var b bytes.Buffer
	if err := h.page(o).Render(ctx, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	return b.Bytes(), nil
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/fortune", h.DrawFortune)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) DrawFortune(c echo.Context) error {
	format := c.QueryParam("format")
	if format == "" {
		format = h.defaultFormat
	}

	var mode app.Mode
	switch format {
	case formatText:
		mode = app.ModePlain
	case formatJSON, formatHTML:
		mode = app.ModeStructured
	case formatPNG:
		mode = app.ModeImage
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be one of text, json, html, png"})
	}

	start := time.Now()
	resp, err := h.svc.Draw(c.Request().Context(), app.DrawRequest{Mode: mode})
	if err != nil {
		return mapError(c, err)
	}
	out := resp.Outcome

	switch {
	case format == formatJSON:
		requestID, _ := c.Get("request_id").(string)
		return c.JSON(http.StatusOK, toResponse(out, requestID, time.Since(start)))
	case !out.Drawn():
		return c.String(http.StatusOK, out.Message)
	case resp.Image != nil:
		return c.Blob(http.StatusOK, resp.Image.ContentType, resp.Image.Data)
	case format == formatHTML && out.Oracle != nil:
		page, err := h.renderPage(c.Request().Context(), *out.Oracle)
		if err != nil {
			return mapError(c, err)
		}
		return c.HTMLBlob(http.StatusOK, page)
	default:
		return c.String(http.StatusOK, string(out.Raw))
	}
}

func toResponse(o domain.Outcome, requestID string, latency time.Duration) FortuneResponse {
	r := FortuneResponse{
		Kind:    o.Kind,
		Message: o.Message,
		Raw:     string(o.Raw),
		Meta: MetaResp{
			RequestID: requestID,
			LatencyMS: latency.Milliseconds(),
		},
	}
	if o.Oracle != nil {
		r.Oracle = &OracleResponse{
			Verdict:      o.Oracle.Verdict,
			Poem:         o.Oracle.PoemLines[:],
			Annotations:  o.Oracle.Annotations,
			Explanations: o.Oracle.ExplanationBlocks,
		}
	}
	return r
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrCorpusEmpty), errors.Is(err, domain.ErrNoRandomSource):
		slog.Error("fortune source unavailable", "request_id", requestID, "error", err)
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "fortune source unavailable"})
	case errors.Is(err, domain.ErrInvalidOracleText):
		slog.Error("malformed fortune text", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "malformed fortune text"})
	case errors.Is(err, domain.ErrRender):
		slog.Error("render failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "render failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
