package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header that carries the id across services.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh random (UUID v4) id.
func New() string {
	return uuid.New().String()
}

// NewContext returns a context that carries the given request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ensure returns ctx unchanged if it already carries an id, otherwise a
// child context with a new one.
func Ensure(ctx context.Context) context.Context {
	if FromContext(ctx) != "" {
		return ctx
	}
	return NewContext(ctx, New())
}
