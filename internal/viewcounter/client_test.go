package viewcounter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Bahjat/view-counter/internal/platform/requestid"
)

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(ClientOptions{})
	if c == nil || c.client == nil {
		t.Fatal("NewHTTPClient returned no client")
	}
	if c.client.Timeout != 10*time.Second {
		t.Errorf("default Timeout = %v, want 10s", c.client.Timeout)
	}

	c = NewHTTPClient(ClientOptions{Timeout: 2 * time.Second, BlockPrivate: true})
	if c.client.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", c.client.Timeout)
	}
}

func TestHTTPClient_Request(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), userAgent)
		}
		if r.Header.Get("Accept") != apiAccept {
			t.Errorf("Accept = %q, want %q", r.Header.Get("Accept"), apiAccept)
		}
		if r.Header.Get(requestid.Header) != "run-1" {
			t.Errorf("%s = %q, want %q", requestid.Header, r.Header.Get(requestid.Header), "run-1")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"ok": true}`)
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client()}
	ctx := requestid.NewContext(context.Background(), "run-1")
	resp, err := c.Request(ctx, http.MethodPost, ts.URL+RecordViewPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if resp.ContentType != "application/json" {
		t.Errorf("ContentType = %q", resp.ContentType)
	}
	if resp.URL != ts.URL+RecordViewPath {
		t.Errorf("URL = %q", resp.URL)
	}
}

func TestHTTPClient_Request_NonSuccessIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client()}
	resp, err := c.Request(context.Background(), http.MethodGet, ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestHTTPClient_Request_LimitsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("9", maxAPIResponseBody+100)))
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client()}
	resp, err := c.Request(context.Background(), http.MethodGet, ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if len(data) != maxAPIResponseBody {
		t.Errorf("read %d bytes, want %d", len(data), maxAPIResponseBody)
	}
}

func TestHTTPClient_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != pageAccept {
			t.Errorf("Accept = %q, want %q", r.Header.Get("Accept"), pageAccept)
		}
		_, _ = fmt.Fprint(w, "<html><body>Hello</body></html>")
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client()}
	body, status, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = body.Close() }()

	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}
	data, _ := io.ReadAll(body)
	if string(data) != "<html><body>Hello</body></html>" {
		t.Errorf("body = %q", string(data))
	}
}

func TestHTTPClient_InvalidURL(t *testing.T) {
	c := NewHTTPClient(ClientOptions{})
	if _, err := c.Request(context.Background(), http.MethodGet, "://bad-url"); err == nil {
		t.Error("Request: expected error for invalid URL, got nil")
	}
	if _, _, err := c.Fetch(context.Background(), "://bad-url"); err == nil {
		t.Error("Fetch: expected error for invalid URL, got nil")
	}
}

func TestHTTPClient_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Request(ctx, http.MethodGet, ts.URL); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestHTTPClient_BlockPrivateRefusesLoopback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewHTTPClient(ClientOptions{Timeout: 2 * time.Second, BlockPrivate: true})
	if _, err := c.Request(context.Background(), http.MethodGet, ts.URL); err == nil {
		t.Fatal("expected loopback request to be blocked")
	}
}

func TestSafeRedirectPolicy(t *testing.T) {
	tests := []struct {
		name    string
		scheme  string
		via     int
		wantErr bool
	}{
		{name: "https within limit", scheme: "https", via: 3, wantErr: false},
		{name: "too many redirects", scheme: "https", via: 5, wantErr: true},
		{name: "blocked ftp scheme", scheme: "ftp", via: 0, wantErr: true},
		{name: "blocked file scheme", scheme: "file", via: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{Scheme: tt.scheme, Host: "counter.test"}} //nolint:exhaustruct
			via := make([]*http.Request, tt.via)

			err := safeRedirectPolicy(req, via)
			if (err != nil) != tt.wantErr {
				t.Errorf("safeRedirectPolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
