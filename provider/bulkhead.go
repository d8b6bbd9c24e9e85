package provider

import (
	"context"

	"github.com/kbukum/promptkit/resilience"
)

// WithBulkhead returns a Middleware that runs each Execute inside b.
func WithBulkhead[I, O any](b *resilience.Bulkhead) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return Func(inner.Name(), func(ctx context.Context, input I) (O, error) {
			return resilience.ExecuteWithResult(b, ctx, func() (O, error) {
				return inner.Execute(ctx, input)
			})
		}, inner.IsAvailable)
	}
}
