package llm

import (
	"context"
	"fmt"

	"github.com/kbukum/promptkit/errors"
)

// Result is the outcome of one generation. Exactly one of Text and Err is
// meaningful.
type Result struct {
	// Text is the raw provider output, unmodified.
	Text string
	// Err is the failure, if any.
	Err error
}

// OK reports whether the generation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Output returns the text on success and the "Error: ..." rendering of the
// failure otherwise.
func (r Result) Output() string {
	if r.Err != nil {
		return errors.Text(r.Err)
	}
	return r.Text
}

// Generate validates req, sends a private copy of it to p exactly once and
// wraps the outcome. It never retries and never panics: a panicking
// provider becomes an internal error result.
func Generate(ctx context.Context, p Provider, req GenerationRequest) (res Result) {
	if p == nil {
		return Result{Err: errors.Configuration("no provider configured")}
	}
	if err := req.Validate(); err != nil {
		return Result{Err: err}
	}
	frozen := req.Clone()

	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: errors.Internal(fmt.Errorf("provider %s panicked: %v", p.Name(), r))}
		}
	}()

	text, err := p.Complete(ctx, frozen)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Text: text}
}
