package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/kbukum/promptkit/logger"
)

// Recovery turns a panic into a 500 JSON response and logs the stack.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.WithContext(r.Context()).Error("Panic recovered", map[string]interface{}{
						"error":  fmt.Sprintf("%v", rec),
						"stack":  string(debug.Stack()),
						"path":   r.URL.Path,
						"method": r.Method,
					})
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
