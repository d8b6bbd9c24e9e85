// Package llm defines the provider contract shared by the text-generation
// backends and the single-shot generator the nodes call through.
//
// # Architecture
//
// The llm package provides:
//   - Universal types: [Message], [GenerationRequest]
//   - [Provider]: a synchronous Complete call on top of provider.Provider
//   - [Generate]: validates one request, calls the provider exactly once and
//     returns a [Result] that carries either the raw text or the failure
//   - [Instrument]: wraps a Provider with the provider package's logging,
//     metrics and tracing middleware
//   - [Limit]: caps the calls in flight with a resilience.Bulkhead; calls
//     over the cap fail with RATE_LIMITED instead of queueing forever
//
// Concrete transports live in the moonshot and ollama sub-packages; test
// doubles live in llmtest.
//
// # Usage
//
//	p, err := ollama.New(ollama.Config{BaseURL: "http://localhost:11434"})
//	res := llm.Generate(ctx, p, llm.GenerationRequest{
//	    Model:       "qwen2.5:7b",
//	    Prompt:      "Describe a lighthouse at dusk.",
//	    Temperature: 0.7,
//	    MaxTokens:   1000,
//	})
//	fmt.Println(res.Output())
//
// Generate never retries. A failed call surfaces in Result.Err, and
// Result.Output renders it as the in-band "Error: ..." text the nodes return.
package llm
