package api

import (
	"encoding/json"
	"net/http"

	domainerrors "github.com/animesense/animesense-server/internal/errors"
	"github.com/animesense/animesense-server/internal/ratelimit"
)

// refreshLimitMiddleware throttles refresh triggers per client IP. Every
// other route passes through untouched; reads are cheap, pipeline runs are
// not.
func (s *Server) refreshLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.refreshLimiter == nil || r.Method != http.MethodPost || r.URL.Path != "/api/refresh-data" {
			next.ServeHTTP(w, r)
			return
		}

		key := getClientIP(r)
		if !s.refreshLimiter.Allow(key) {
			s.logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
			writeRateLimited(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    string(domainerrors.CodeRateLimited),
		"message": "Too many refresh requests. Please try again later.",
	})
}

// NewRefreshLimiter creates the limiter used by refreshLimitMiddleware.
// ratePerMinute is converted to the per-second rate the limiter expects.
func NewRefreshLimiter(ratePerMinute, burst int) *ratelimit.KeyedRateLimiter {
	return ratelimit.New(float64(ratePerMinute)/60, burst)
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
