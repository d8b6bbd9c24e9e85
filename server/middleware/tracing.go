package middleware

import (
	"fmt"
	"net/http"

	"github.com/kbukum/promptkit/auth"
	"github.com/kbukum/promptkit/observability"
)

// Tracing opens one span per request and records request metrics. A nil
// metrics skips the metrics.
func Tracing(service string, metrics *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var subject string
			if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
				subject = claims.Subject
			}
			oc := observability.NewOperationContext(service, r.Method+" "+r.URL.Path,
				r.Header.Get(RequestIDHeader), subject, metrics)

			ctx := observability.WithOperationContext(r.Context(), oc)
			ctx, span := oc.StartSpanForOperation(ctx, observability.SpanHTTPRequest)

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			var err error
			if sw.status >= 500 {
				err = fmt.Errorf("http status %d", sw.status)
			}
			oc.EndOperation(ctx, span, fmt.Sprint(sw.status), err)
		})
	}
}
