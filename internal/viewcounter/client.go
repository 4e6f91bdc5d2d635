package viewcounter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Bahjat/view-counter/internal/platform/requestid"
)

// Requester issues a single HTTP request against an absolute URL.
type Requester interface {
	Request(ctx context.Context, method, url string) (*Response, error)
}

// Response is the subset of an HTTP response the widget reads. Callers must
// close Body.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
}

// limitedReadCloser reads from a LimitReader but closes the original body.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// HTTPClient implements Requester and fetches host pages.
type HTTPClient struct {
	client *http.Client
}

// ClientOptions tunes NewHTTPClient.
type ClientOptions struct {
	Timeout time.Duration
	// BlockPrivate refuses connections to private and reserved addresses.
	BlockPrivate bool
}

const (
	maxRedirects = 5
	userAgent    = "ViewCounter/1.0"

	apiAccept  = "application/json, text/plain;q=0.9, */*;q=0.8"
	pageAccept = "text/html"

	// Counts are tiny; pages are not.
	maxAPIResponseBody  = 64 << 10
	maxPageResponseBody = 10 << 20
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
)

// NewHTTPClient returns an HTTPClient with the given timeout and redirect
// validation. With BlockPrivate set, the dialer rejects private and reserved
// IP ranges, which matters when page URLs or the API bases they declare come
// from untrusted input.
func NewHTTPClient(opts ClientOptions) *HTTPClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	dialer := &net.Dialer{
		Timeout:   opts.Timeout,
		KeepAlive: 30 * time.Second,
	}
	if opts.BlockPrivate {
		dialer.Control = blockPrivateAddresses
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         dialer.DialContext,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: safeRedirectPolicy,
		},
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Request sends a bodiless request to a counting API URL.
func (c *HTTPClient) Request(ctx context.Context, method, targetURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", apiAccept)
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.client.Do(req) //nolint:bodyclose // body is returned to caller via limitedReadCloser
	if err != nil {
		return nil, err
	}

	return &Response{
		URL:         targetURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body: &limitedReadCloser{
			Reader: io.LimitReader(resp.Body, maxAPIResponseBody),
			Closer: resp.Body,
		},
	}, nil
}

// Fetch retrieves the host page at the given URL and returns its body.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", pageAccept)

	resp, err := c.client.Do(req) //nolint:bodyclose // body is returned to caller via limitedReadCloser
	if err != nil {
		return nil, 0, err
	}

	limited := &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, maxPageResponseBody),
		Closer: resp.Body,
	}
	return limited, resp.StatusCode, nil
}
