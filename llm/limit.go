package llm

import (
	"time"

	"github.com/kbukum/promptkit/provider"
	"github.com/kbukum/promptkit/resilience"
)

// Limit caps the generations in flight against p at maxConcurrent. A call
// that finds no slot within maxWait fails with RATE_LIMITED.
func Limit(p Provider, maxConcurrent int, maxWait time.Duration) Provider {
	bh := resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          p.Name(),
		MaxConcurrent: maxConcurrent,
		MaxWait:       maxWait,
	})
	return &wrapped{
		inner: p,
		rr:    provider.WithBulkhead[GenerationRequest, string](bh)(AsRequestResponse(p)),
	}
}
