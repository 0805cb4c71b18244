package ratelimit

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stock-quote-proxy/internal/infrastructure/logx"
	"stock-quote-proxy/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

const exceededMessage = "Too many requests from this IP, please try again later."

// Middleware applies the limiter to every request on the routes it wraps,
// keyed by client IP. Store failures fail open: the guard protects the
// upstream quota and must not take the API down with it.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				logx.L().Warn("rate limit store failure", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			setRateHeaders(w, d)
			if !d.Allowed {
				metrics.RecordRateLimited()
				logx.L().Warn("rate limit exceeded",
					zap.String("client", clientIP(r)),
					zap.String("path", r.URL.Path),
				)
				writeExceeded(w, d)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the caller identity behind proxies: first hop of
// X-Forwarded-For, then X-Real-IP, then the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func setRateHeaders(w http.ResponseWriter, d Decision) {
	w.Header().Set("RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("RateLimit-Reset", strconv.Itoa(secondsUntil(d.ResetAt)))
}

func writeExceeded(w http.ResponseWriter, d Decision) {
	retry := secondsUntil(d.ResetAt)
	if retry < 1 {
		retry = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retry))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": exceededMessage})
}

func secondsUntil(t time.Time) int {
	s := int(math.Ceil(time.Until(t).Seconds()))
	if s < 0 {
		return 0
	}
	return s
}
