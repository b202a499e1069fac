//go:generate mockgen -source=ratelimit.go -destination=ratelimit_mock.go -package=middlewares
package middlewares

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sbilibin2017/users-api/internal/logger"
	"github.com/sbilibin2017/users-api/internal/ratelimit"
	"github.com/sbilibin2017/users-api/internal/response"
)

// Consumer counts one request for a client key.
type Consumer interface {
	Consume(ctx context.Context, key string) (ratelimit.Result, error)
}

// RateLimitMiddleware rejects clients that exhausted their request quota with 429.
// Clients are keyed by IP, so chi's RealIP should run first when behind a proxy.
func RateLimitMiddleware(limiter Consumer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			res, err := limiter.Consume(ctx, clientIP(r))
			if err != nil {
				logger.FromContext(ctx).Warnw("rate limiter unavailable, request allowed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", time.Now().Add(res.ResetAfter).UTC().Format(http.TimeFormat))

			if !res.Allowed {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(res.ResetAfter.Seconds()))))
				response.Error(w, response.ErrTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
