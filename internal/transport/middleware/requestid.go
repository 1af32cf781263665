package middleware

import (
	"context"
	"net/http"

	"github.com/frahmantamala/salesops/pkg/logger"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// TraceID returns the request's trace id, empty when the middleware didn't
// run.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID assigns each request a trace id, honoring one supplied by the
// caller, and echoes it back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), traceIDKey{}, traceID)
		ctx = logger.With(ctx, "trace_id", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
