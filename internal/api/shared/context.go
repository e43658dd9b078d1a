package shared

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
)

// ContextKey is the type for values this package stores in a request context.
type ContextKey string

const (
	// IdentityContextKey is the context key for the authenticated caller.
	IdentityContextKey ContextKey = "identity"

	// TraceIDHeader echoes the request's trace id back to the client.
	TraceIDHeader = "X-Trace-ID"
)

// Identity is the caller resolved from a bearer token.
type Identity struct {
	UserID        int64
	Username      string
	Authenticated bool
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, id)
}

// IdentityFromContext returns the caller stored by the auth middleware.
// Without one it returns the zero Identity: UserID 0 owns nothing, so every
// ownership-scoped query comes back empty.
func IdentityFromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	id, ok := ctx.Value(IdentityContextKey).(Identity)
	if !ok {
		return Identity{}
	}
	return id
}

// SetTraceID attaches a fresh trace id to ctx along with a request logger
// tagged with it.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, uuid.NewString(), nil)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}

// RequestLogger returns the request-scoped logger, falling back to the default.
func RequestLogger(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}
