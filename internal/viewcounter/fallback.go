package viewcounter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrAllBasesFailed is returned when every base was tried and none of them
// produced an error worth reporting.
var ErrAllBasesFailed = errors.New("all view counter API requests failed")

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

// FetchWithFallback tries path against each base in order and returns the
// first 2xx response. Each base is tried exactly once. A transport error or a
// non-2xx status moves on to the next base; when all of them fail the last
// error is returned.
func FetchWithFallback(ctx context.Context, client Requester, bases Bases, method, path string, logger *slog.Logger) (*Response, error) {
	var lastErr error

	for _, base := range bases.List() {
		target, err := bases.URL(base, path)
		if err != nil {
			lastErr = err
			logger.Debug("skipping API base", "base", base, "error", err)
			continue
		}

		resp, err := client.Request(ctx, method, target)
		if err != nil {
			lastErr = err
			logger.Debug("API request failed", "url", target, "error", err)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_ = resp.Body.Close()
			lastErr = &StatusError{URL: target, StatusCode: resp.StatusCode}
			logger.Debug("API request rejected", "url", target, "status", resp.StatusCode)
			continue
		}
		return resp, nil
	}

	if lastErr == nil {
		lastErr = ErrAllBasesFailed
	}
	return nil, lastErr
}
