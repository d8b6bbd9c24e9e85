package component

import (
	"context"

	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/observability"
)

// Component is a lifecycle-managed part of the process.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start brings the component up. It must return once the component is
	// ready; long-running work continues in the background.
	Start(ctx context.Context) error

	// Stop releases the component's resources.
	Stop(ctx context.Context) error
}

// Func adapts a pair of functions to Component. Either may be nil.
type Func struct {
	ComponentName string
	StartFunc     func(ctx context.Context) error
	StopFunc      func(ctx context.Context) error
}

func (f Func) Name() string { return f.ComponentName }

func (f Func) Start(ctx context.Context) error {
	if f.StartFunc == nil {
		return nil
	}
	return f.StartFunc(ctx)
}

func (f Func) Stop(ctx context.Context) error {
	if f.StopFunc == nil {
		return nil
	}
	return f.StopFunc(ctx)
}

// Backend reports the reachability of an LLM provider. It has nothing to
// start or stop.
type Backend struct {
	provider llm.Provider
}

var (
	_ Component                   = (*Backend)(nil)
	_ observability.HealthChecker = (*Backend)(nil)
)

// NewBackend wraps p as a health-reporting component.
func NewBackend(p llm.Provider) *Backend {
	return &Backend{provider: p}
}

func (b *Backend) Name() string { return "llm:" + b.provider.Name() }

func (b *Backend) Start(context.Context) error { return nil }

func (b *Backend) Stop(context.Context) error { return nil }

// CheckHealth marks the backend degraded rather than down: nodes keep
// answering with in-band errors when a backend is unreachable.
func (b *Backend) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: b.Name(), Status: observability.HealthStatusUp}
	if err := llm.CheckCredential(b.provider); err != nil {
		h.Status = observability.HealthStatusDegraded
		h.Message = err.Error()
		return h
	}
	if !b.provider.IsAvailable(ctx) {
		h.Status = observability.HealthStatusDegraded
		h.Message = "backend unreachable"
	}
	return h
}
