// Package resilience bounds how much load promptkit puts on a backend.
//
// A Bulkhead caps the number of generations in flight against one backend,
// such as a local Ollama daemon sharing a single GPU. Calls beyond the cap
// wait up to MaxWait for a slot and are then rejected with a RATE_LIMITED
// error. Nothing here retries: a rejected call is reported to the caller
// like any other failure.
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{
//	    Name:          "ollama",
//	    MaxConcurrent: 2,
//	    MaxWait:       30 * time.Second,
//	})
//	text, err := resilience.ExecuteWithResult(bh, ctx, func() (string, error) {
//	    return p.Complete(ctx, req)
//	})
package resilience
