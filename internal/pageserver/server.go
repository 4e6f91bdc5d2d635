package pageserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Bahjat/view-counter/internal/platform/middleware"
)

// NewHandler wires the transport's routes behind request-id and access-log
// middleware.
func NewHandler(t *Transport, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	t.RegisterRoutes(mux)
	return middleware.RequestID(middleware.Logging(logger)(mux))
}

// NewServer returns an http.Server for addr with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      pageLoadTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
