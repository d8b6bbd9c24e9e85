package provider

import "context"

// Middleware transforms a RequestResponse provider by wrapping it.
// The returned provider typically delegates to the original while
// adding cross-cutting behavior (logging, metrics, tracing, etc.).
type Middleware[I, O any] func(RequestResponse[I, O]) RequestResponse[I, O]

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(provider) is equivalent to a(b(c(provider))).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// Func builds a RequestResponse from plain functions. A nil available
// reports the provider as always available.
func Func[I, O any](name string, execute func(context.Context, I) (O, error), available func(context.Context) bool) RequestResponse[I, O] {
	return &funcRR[I, O]{name: name, execute: execute, available: available}
}

type funcRR[I, O any] struct {
	name      string
	execute   func(context.Context, I) (O, error)
	available func(context.Context) bool
}

func (f *funcRR[I, O]) Name() string { return f.name }

func (f *funcRR[I, O]) IsAvailable(ctx context.Context) bool {
	if f.available == nil {
		return true
	}
	return f.available(ctx)
}

func (f *funcRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return f.execute(ctx, input)
}
