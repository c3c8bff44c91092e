package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

// RateLimit returns middleware that admits requests through a single
// process-wide token bucket refilled at rps tokens per second with the given
// burst. Requests that find the bucket empty receive 429 Too Many Requests
// with a Retry-After hint. A burst below 1 is raised to 1; a non-positive
// rps returns a pass-through middleware.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	burst = max(burst, 1)
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	retryAfter := strconv.Itoa(int(math.Ceil(1 / rps)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logging.FromContext(r.Context()).WarnContext(r.Context(), "rate limit exceeded",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
