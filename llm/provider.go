package llm

import (
	"context"

	"github.com/kbukum/promptkit/provider"
)

// Provider is the interface that text-generation backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Complete sends one request and returns the generated text.
	Complete(ctx context.Context, req GenerationRequest) (string, error)
}

// ModelLister is implemented by backends that can enumerate their models.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// CredentialChecker is implemented by backends that need a credential
// before they can be called.
type CredentialChecker interface {
	CheckCredential() error
}

// NewRegistry creates a new provider registry for LLM providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// AsRequestResponse exposes p as a provider.RequestResponse so the generic
// middleware can wrap it.
func AsRequestResponse(p Provider) provider.RequestResponse[GenerationRequest, string] {
	return provider.Func(p.Name(), p.Complete, p.IsAvailable)
}
