package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/promptkit/logger"
)

// quietPaths are probed often and not logged.
var quietPaths = map[string]bool{
	"/health":  true,
	"/version": true,
}

// RequestLogger logs every request with method, path, status, response
// size and duration, at a level chosen by status.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := logger.MergeWithDuration(map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": sw.status,
				"bytes":  sw.bytes,
			}, time.Since(start))
			logByStatus(log.WithContext(r.Context()), fields, sw.status)
		})
	}
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
