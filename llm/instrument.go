package llm

import (
	"context"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
	"github.com/kbukum/promptkit/provider"
)

// Instrument wraps p with the logging, tracing and metrics middleware.
// A nil metrics skips the metric middlewares.
func Instrument(p Provider, log *logger.Logger, metrics *observability.Metrics, service string) Provider {
	if log == nil {
		log = logger.Nop()
	}
	mws := []provider.Middleware[GenerationRequest, string]{
		provider.WithLogging[GenerationRequest, string](log),
		provider.WithTracing[GenerationRequest, string](service),
	}
	if metrics != nil {
		mws = append(mws,
			provider.WithMetrics[GenerationRequest, string](metrics),
			WithGenerationMetrics(metrics),
		)
	}
	return &wrapped{
		inner: p,
		rr:    provider.Chain(mws...)(AsRequestResponse(p)),
	}
}

// WithGenerationMetrics counts generations per provider and model.
func WithGenerationMetrics(metrics *observability.Metrics) provider.Middleware[GenerationRequest, string] {
	return func(inner provider.RequestResponse[GenerationRequest, string]) provider.RequestResponse[GenerationRequest, string] {
		return provider.Func(inner.Name(), func(ctx context.Context, req GenerationRequest) (string, error) {
			text, err := inner.Execute(ctx, req)
			status := "ok"
			if err != nil {
				status = string(errors.CodeOf(err))
			}
			metrics.RecordGeneration(ctx, inner.Name(), req.Model, status)
			return text, err
		}, inner.IsAvailable)
	}
}

type wrapped struct {
	inner Provider
	rr    provider.RequestResponse[GenerationRequest, string]
}

func (i *wrapped) Name() string                         { return i.inner.Name() }
func (i *wrapped) IsAvailable(ctx context.Context) bool { return i.inner.IsAvailable(ctx) }

func (i *wrapped) Complete(ctx context.Context, req GenerationRequest) (string, error) {
	return i.rr.Execute(ctx, req)
}

// Unwrap returns the provider being wrapped.
func (i *wrapped) Unwrap() Provider { return i.inner }

// ListModels asks p, or the provider it wraps, for its model list.
func ListModels(ctx context.Context, p Provider) ([]string, error) {
	l, ok := find[ModelLister](p)
	if !ok {
		return nil, errors.Configuration("provider does not support model listing")
	}
	return l.ListModels(ctx)
}

// CheckCredential reports a missing credential without a network call.
// Providers that need no credential always pass.
func CheckCredential(p Provider) error {
	if c, ok := find[CredentialChecker](p); ok {
		return c.CheckCredential()
	}
	return nil
}

// find walks the Unwrap chain of p looking for a T.
func find[T any](p Provider) (T, bool) {
	for p != nil {
		if t, ok := p.(T); ok {
			return t, true
		}
		u, ok := p.(interface{ Unwrap() Provider })
		if !ok {
			break
		}
		p = u.Unwrap()
	}
	var zero T
	return zero, false
}
