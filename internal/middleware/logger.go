package middleware

import (
	"net/http"
	"time"

	"dettyclub/internal/logger"
)

// LoggerMiddleware logs incoming HTTP requests with their duration.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log := logger.New()
		log.Debug().
			Str("duration", time.Since(start).String()).
			Msgf("%s %s", r.Method, r.URL.RequestURI())
	})
}
