package httpapi

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// loggingMiddleware logs method, path, remote address, and duration.
// Only the path is logged — query strings carry PINs.
func loggingMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("from", r.RemoteAddr).
			Dur("dur", time.Since(start)).
			Msg("request")
	})
}
