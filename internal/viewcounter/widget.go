package viewcounter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"github.com/Bahjat/view-counter/internal/platform/errs"
	"github.com/Bahjat/view-counter/internal/platform/requestid"
)

// Counting API endpoints, relative to a base.
const (
	RecordViewPath = "/api/record_view"
	ViewCountPath  = "/api/view_count"
)

// Config is everything a Widget needs, resolved once at startup.
type Config struct {
	Sources Sources
	Locale  language.Tag
}

// Widget records page views and shows the running count. It holds no
// per-load state and is safe for concurrent use.
type Widget struct {
	client Requester
	bases  Bases
	locale language.Tag
	logger *slog.Logger
}

// New returns a Widget whose base list is resolved from cfg.Sources.
func New(cfg Config, client Requester, logger *slog.Logger) *Widget {
	locale := cfg.Locale
	if locale == language.Und {
		locale = language.AmericanEnglish
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Widget{
		client: client,
		bases:  ResolveBases(cfg.Sources),
		locale: locale,
		logger: logger,
	}
}

// Bases returns the resolved candidate list.
func (w *Widget) Bases() Bases {
	return w.bases
}

// Outcome is what a page load ended up displaying.
type Outcome struct {
	Text      string
	Count     int64
	Available bool
}

// Initialize runs the widget against a host page. Pages without a view-count
// element are left untouched and no request is made.
func (w *Widget) Initialize(ctx context.Context, page *Page) (Outcome, bool) {
	el, ok := page.Element(ElementID)
	if !ok {
		return Outcome{}, false
	}
	return w.Run(ctx, el), true
}

// Run performs one page load against d: show the loading marker, record the
// view, then fetch and show the count. Errors are logged, never returned.
func (w *Widget) Run(ctx context.Context, d Display) Outcome {
	ctx = requestid.Ensure(ctx)

	d.SetText(LoadingText)
	w.RecordView(ctx)

	count, err := w.FetchCount(ctx)
	if err != nil {
		w.log(ctx).Error("view_count endpoint failed", "error", err)
		d.SetText(UnavailableText)
		return Outcome{Text: UnavailableText}
	}

	text := FormatCount(count, w.locale)
	d.SetText(text)
	return Outcome{Text: text, Count: count, Available: true}
}

// RecordView tells the counting API about a page view. Failure is logged and
// otherwise ignored.
func (w *Widget) RecordView(ctx context.Context) {
	resp, err := FetchWithFallback(ctx, w.client, w.bases, http.MethodPost, RecordViewPath, w.log(ctx))
	if err != nil {
		w.log(ctx).Error("record_view endpoint failed", "error", &errs.AppError{
			Kind:           errs.RecordFailed,
			UpstreamStatus: upstreamStatus(err),
			Message:        "failed to record page view",
			Cause:          err,
		})
		return
	}
	_ = resp.Body.Close()
	w.log(ctx).Debug("view recorded", "url", resp.URL)
}

// FetchCount reads the current count from the first reachable base.
func (w *Widget) FetchCount(ctx context.Context) (int64, error) {
	resp, err := FetchWithFallback(ctx, w.client, w.bases, http.MethodGet, ViewCountPath, w.log(ctx))
	if err != nil {
		return 0, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: upstreamStatus(err),
			Message:        "view count API unreachable",
			Cause:          err,
		}
	}

	url := resp.URL
	count, err := ReadCount(resp)
	if err != nil {
		return 0, &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "invalid view count response from " + url,
			Cause:   err,
		}
	}

	w.log(ctx).Debug("view count fetched", "url", url, "count", count)
	return count, nil
}

// Format renders n in the widget's locale.
func (w *Widget) Format(n int64) string {
	return FormatCount(n, w.locale)
}

func (w *Widget) log(ctx context.Context) *slog.Logger {
	return w.logger.With("run_id", requestid.FromContext(ctx))
}

func upstreamStatus(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
