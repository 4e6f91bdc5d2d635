package middleware

import (
	"net/http"

	"github.com/Bahjat/view-counter/internal/platform/requestid"
)

// RequestID is middleware that assigns a unique request ID to each request.
// An incoming X-Request-ID is reused, otherwise a new UUID v4 is generated.
// The id is echoed on the response and travels on outgoing counting API
// calls through the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		w.Header().Set(requestid.Header, id)
		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
