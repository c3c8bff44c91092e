package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

// Chain composes multiple middleware into a single middleware. The first
// argument becomes the outermost middleware (executed first on request,
// last on response):
//
//	Chain(Recovery, RequestID, Logging)(handler)
//
// is equivalent to:
//
//	Recovery(RequestID(Logging(handler)))
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// StackOptions configures the standard inbound pipeline built by Stack.
type StackOptions struct {
	Logger  *slog.Logger
	Metrics *telemetry.Metrics

	// RequestTimeout bounds handler execution. Zero disables the timeout.
	RequestTimeout time.Duration

	// RequestsPerSecond and Burst configure the shared token bucket.
	// A non-positive RequestsPerSecond disables rate limiting.
	RequestsPerSecond float64
	Burst             int
}

// Stack returns the service middleware in execution order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → RateLimit → Timeout
//
// Rejected and timed-out requests are still traced and logged.
func Stack(opts StackOptions) []func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mws := []func(http.Handler) http.Handler{
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(opts.Metrics),
		Logging(logger),
	}
	if opts.RequestsPerSecond > 0 {
		mws = append(mws, RateLimit(opts.RequestsPerSecond, opts.Burst))
	}
	if opts.RequestTimeout > 0 {
		mws = append(mws, Timeout(opts.RequestTimeout))
	}
	return mws
}
