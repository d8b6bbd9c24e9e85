package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptkit/observability"
)

// HealthChecker produces the service health report.
type HealthChecker func(ctx context.Context) *observability.ServiceHealth

// Health reports service health. Only a down service answers 503; a
// degraded backend still lets nodes answer with in-band errors.
func Health(service, version string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := observability.NewServiceHealth(service, version)
		if checker != nil {
			report = checker(c.Request.Context())
		}

		status := http.StatusOK
		if report.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":     report.Status,
			"service":    report.Service,
			"version":    report.Version,
			"components": report.Components,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}
