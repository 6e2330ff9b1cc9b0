package middleware

import (
	"net/http"
	"time"

	"github.com/davidbz/propwise/internal/observability"
)

// Correlation headers set on every response.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderTraceID   = "X-Trace-Id"

	maxInboundRequestIDLen = 64
)

// statusRecorder captures the status written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Trace attaches trace, span and request ids to the request context and logs
// the request outcome. A caller-supplied X-Request-Id is kept so retries of the
// same search or analysis can be correlated.
func Trace() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ctx := r.Context()

			traceID := observability.GenerateTraceID()
			ctx = observability.WithTraceID(ctx, traceID)
			ctx = observability.WithSpanID(ctx, observability.GenerateSpanID())

			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" || len(requestID) > maxInboundRequestIDLen {
				requestID = observability.GenerateRequestID()
			}
			ctx = observability.WithRequestID(ctx, requestID)

			w.Header().Set(HeaderTraceID, traceID)
			w.Header().Set(HeaderRequestID, requestID)

			logger := observability.FromContext(ctx)
			logger.Debug("request started",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.String("remote_addr", r.RemoteAddr))

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Info("request completed",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.Int("status", rec.status),
				observability.String("cache", w.Header().Get("X-Propwise-Cache")),
				observability.Duration("duration", time.Since(started)))
		})
	}
}
