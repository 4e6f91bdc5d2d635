package pageserver

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/Bahjat/view-counter/internal/model"
	"github.com/Bahjat/view-counter/internal/platform/errs"
	"github.com/Bahjat/view-counter/internal/platform/requestid"
	"github.com/Bahjat/view-counter/internal/viewcounter"
)

// Service runs the widget once per page load and logs the results.
type Service struct {
	widget CountWidget
	page   []byte
	logger *slog.Logger
}

// NewService creates a Service that serves hostPage with widget applied.
// hostPage is parsed afresh for every request so loads never share a tree.
func NewService(widget CountWidget, hostPage []byte, logger *slog.Logger) *Service {
	return &Service{widget: widget, page: hostPage, logger: logger}
}

// RenderPage performs one page load and returns the resulting HTML.
func (s *Service) RenderPage(ctx context.Context) ([]byte, error) {
	logger := s.logger.With("request_id", requestid.FromContext(ctx))

	page, err := viewcounter.LoadPage(bytes.NewReader(s.page))
	if err != nil {
		err = &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the host page.",
			Cause:   err,
		}
		logger.Error("page load failed", "error", err)
		return nil, err
	}

	outcome, ran := s.widget.Initialize(ctx, page)
	if !ran {
		logger.Debug("host page has no view counter element")
	} else {
		logger.Info("page load complete", "text", outcome.Text, "available", outcome.Available)
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		logger.Error("page render failed", "error", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// Count performs one page load outside any document and reports the count.
func (s *Service) Count(ctx context.Context) (*model.ViewCount, error) {
	logger := s.logger.With("request_id", requestid.FromContext(ctx))

	var display viewcounter.TextDisplay
	outcome := s.widget.Run(ctx, &display)
	if !outcome.Available {
		err := &errs.AppError{
			Kind:    errs.CountUnavailable,
			Message: "The view count is not available right now.",
		}
		logger.Warn("count unavailable")
		return nil, err
	}

	logger.Info("count served", "count", outcome.Count)
	return &model.ViewCount{Count: outcome.Count, Formatted: outcome.Text}, nil
}
