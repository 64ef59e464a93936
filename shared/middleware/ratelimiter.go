package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/folio-cms/folio/shared/middleware/ratelimiter"
	"github.com/folio-cms/folio/shared/utils"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return RateLimitWithHandler(rl, getIdentity, func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Rate limit exceeded, try again later"})
	})
}

// RateLimitWithHandler lets the caller decide how a rejected request is answered
func RateLimitWithHandler(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error), onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if caller := GetCallerFromContext(r); caller != nil && caller.Admin { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				onLimit(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Possible if caller was authorized with previous middleware
func GetCallerIDFromContext(r *http.Request) (string, error) {
	caller := GetCallerFromContext(r)
	if caller == nil {
		return "", errors.New("Can't get caller id")
	}
	return "caller_" + caller.Id, nil
}

// CallerOrIP keys authenticated requests by caller and the rest by client address
func CallerOrIP(r *http.Request) (string, error) {
	if id, err := GetCallerIDFromContext(r); err == nil {
		return id, nil
	}
	ip, err := GetIP(r)
	if err != nil {
		return "", err
	}
	return "ip_" + ip, nil
}

// GetIP extracts the real client IP from RemoteAddr
// Does NOT trust X-Real-IP or X-Forwarded-For headers (no reverse proxy)
func GetIP(r *http.Request) (string, error) {
	// Only trust RemoteAddr - can't be spoofed (comes from TCP connection)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		ip = r.RemoteAddr
	}

	// Validate it's a real IP
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}
