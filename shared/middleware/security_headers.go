package middleware

import (
	"net/http"
)

// SecurityPolicy controls the headers set by SecurityHeaders.
type SecurityPolicy struct {
	// HSTS is only meaningful behind TLS.
	HSTS bool
	// CSP is omitted when empty.
	CSP string
	// CrossOriginResources allows other origins to embed responses (media served to the site frontend).
	CrossOriginResources bool
}

// APIPolicy is the policy for JSON endpoints: nothing is renderable or framable.
func APIPolicy(https bool) SecurityPolicy {
	return SecurityPolicy{
		HSTS: https,
		CSP:  "default-src 'none'; frame-ancestors 'none'",
	}
}

func SecurityHeaders(policy SecurityPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

			if policy.CrossOriginResources {
				h.Set("Cross-Origin-Resource-Policy", "cross-origin")
			} else {
				h.Set("Cross-Origin-Resource-Policy", "same-site")
			}
			if policy.CSP != "" {
				h.Set("Content-Security-Policy", policy.CSP)
			}
			if policy.HSTS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
