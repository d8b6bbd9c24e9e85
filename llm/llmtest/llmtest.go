// Package llmtest provides in-memory llm.Provider doubles for tests.
package llmtest

import (
	"context"
	"slices"
	"sync"

	"github.com/kbukum/promptkit/llm"
)

// Provider is a scripted llm.Provider. It records every request it
// receives and answers with Fn, or with Text/Err when Fn is nil.
type Provider struct {
	// ProviderName is returned by Name. Defaults to "stub".
	ProviderName string
	// Text is returned when Fn and Err are unset.
	Text string
	// Err is returned when set and Fn is nil.
	Err error
	// Fn computes the answer when set.
	Fn func(ctx context.Context, req llm.GenerationRequest) (string, error)
	// Models is returned by ListModels.
	Models []string
	// ModelsErr is returned by ListModels when set.
	ModelsErr error
	// CredentialErr is returned by CheckCredential when set.
	CredentialErr error
	// Unavailable makes IsAvailable report false.
	Unavailable bool

	mu       sync.Mutex
	requests []llm.GenerationRequest
}

// Fixed returns a provider that always answers text.
func Fixed(text string) *Provider {
	return &Provider{Text: text}
}

// Failing returns a provider that always fails with err.
func Failing(err error) *Provider {
	return &Provider{Err: err}
}

// Func returns a provider that answers with fn.
func Func(fn func(ctx context.Context, req llm.GenerationRequest) (string, error)) *Provider {
	return &Provider{Fn: fn}
}

// Sequence returns a provider that answers texts in order and then repeats
// the last one.
func Sequence(texts ...string) *Provider {
	var (
		mu sync.Mutex
		i  int
	)
	return Func(func(context.Context, llm.GenerationRequest) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(texts) == 0 {
			return "", nil
		}
		t := texts[min(i, len(texts)-1)]
		i++
		return t, nil
	})
}

func (p *Provider) Name() string {
	if p.ProviderName == "" {
		return "stub"
	}
	return p.ProviderName
}

func (p *Provider) IsAvailable(context.Context) bool { return !p.Unavailable }

// Complete records req and answers it.
func (p *Provider) Complete(ctx context.Context, req llm.GenerationRequest) (string, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	if p.Fn != nil {
		return p.Fn(ctx, req)
	}
	if p.Err != nil {
		return "", p.Err
	}
	return p.Text, nil
}

// CheckCredential returns CredentialErr.
func (p *Provider) CheckCredential() error { return p.CredentialErr }

// ListModels returns Models or ModelsErr.
func (p *Provider) ListModels(context.Context) ([]string, error) {
	if p.ModelsErr != nil {
		return nil, p.ModelsErr
	}
	return slices.Clone(p.Models), nil
}

// Requests returns the requests received so far.
func (p *Provider) Requests() []llm.GenerationRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.requests)
}

// Calls returns the number of Complete calls.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// Last returns the most recent request.
func (p *Provider) Last() (llm.GenerationRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return llm.GenerationRequest{}, false
	}
	return p.requests[len(p.requests)-1], true
}

var (
	_ llm.Provider          = (*Provider)(nil)
	_ llm.ModelLister       = (*Provider)(nil)
	_ llm.CredentialChecker = (*Provider)(nil)
)
