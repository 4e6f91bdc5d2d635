package viewcounter

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/Bahjat/view-counter/internal/platform/errs"
)

// PageFetcher retrieves a remote host page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (body io.ReadCloser, statusCode int, err error)
}

// OpenPage loads a host page from an http(s) URL or a local file. For URLs
// the returned origin is the page's own origin; for files it is empty.
func OpenPage(ctx context.Context, fetcher PageFetcher, location string) (*Page, string, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return openFile(location)
	}

	parsed, err := url.Parse(location)
	if err != nil || parsed.Host == "" {
		return nil, "", &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid page URL. Please pass an absolute http(s) URL or a file path.",
			Cause:   err,
		}
	}

	body, statusCode, err := fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, "", &errs.AppError{
			Kind:    errs.Unreachable,
			Message: "The host page could not be reached.",
			Cause:   err,
		}
	}
	defer func() { _ = body.Close() }()

	if statusCode >= 400 {
		return nil, "", &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: statusCode,
			Message:        "The host page returned an error status.",
		}
	}

	page, err := LoadPage(body)
	if err != nil {
		return nil, "", &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the host page.",
			Cause:   err,
		}
	}

	origin := (&url.URL{Scheme: parsed.Scheme, Host: parsed.Host}).String()
	return page, origin, nil
}

func openFile(path string) (*Page, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "The host page file could not be opened.",
			Cause:   err,
		}
	}
	defer func() { _ = f.Close() }()

	page, err := LoadPage(f)
	if err != nil {
		return nil, "", &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the host page.",
			Cause:   err,
		}
	}
	return page, "", nil
}
