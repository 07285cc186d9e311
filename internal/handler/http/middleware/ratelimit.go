// Package middleware holds HTTP middleware shared by the route groups.
package middleware

import (
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	"feedboard/internal/handler/http/respond"
)

var errRateLimited = errors.New("rate limit exceeded")

// NewLimiter returns a process-wide token bucket of perSecond requests with
// a burst of twice that (at least 1).
func NewLimiter(perSecond float64) *rate.Limiter {
	burst := int(perSecond * 2)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// RateLimit rejects requests with 429 once lim is exhausted. A nil limiter
// disables limiting.
func RateLimit(lim *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if lim == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				w.Header().Set("Retry-After", "1")
				respond.SafeError(w, http.StatusTooManyRequests, errRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
