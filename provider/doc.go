// Package provider holds the small generic framework the LLM backends are
// built on.
//
// A RequestResponse[I, O] takes one input and returns one output. Middleware
// wraps one with cross-cutting behavior; Chain composes middlewares so the
// first is outermost:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("promptkit"),
//	)(raw)
//
// WithBulkhead bounds concurrency without retrying rejected calls.
//
// Registry keeps named factories and cached instances:
//
//	reg := provider.NewRegistry[llm.Provider]()
//	reg.RegisterFactory("ollama", newOllama)
//	p, err := reg.Create("ollama", nil)
package provider
