package middleware

import (
	"net/http"
	"time"

	"github.com/folio-cms/folio/shared/logger"
	"github.com/folio-cms/folio/shared/middleware/metrics"
)

// RequestLogger logs one line per request once the handler has finished.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := metrics.Wrap(w)
		next.ServeHTTP(wrapped, r)

		logger.Log.Info("http request",
			"method", r.Method,
			"route", metrics.RoutePattern(r),
			"status", metrics.StatusCode(wrapped),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
