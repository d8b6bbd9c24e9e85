package component

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
)

const defaultStopTimeout = 10 * time.Second

// componentEntry holds a component and its started state.
type componentEntry struct {
	component Component
	started   bool
}

// Registry manages component lifecycle with deterministic ordering.
type Registry struct {
	entries []*componentEntry
	lookup  map[string]*componentEntry
	log     *logger.Logger
	mu      sync.RWMutex
}

// NewRegistry creates a new component registry. A nil log uses the global
// logger.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Registry{
		entries: make([]*componentEntry, 0),
		lookup:  make(map[string]*componentEntry),
		log:     log.WithComponent("component"),
	}
}

// Register adds a component. Register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.lookup[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}

	entry := &componentEntry{component: c}
	r.entries = append(r.entries, entry)
	r.lookup[name] = entry

	r.log.Debug("Component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts all components in registration order and stops at the
// first failure. Components already started stay started; call StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Starting all components", logger.Fields("count", len(r.entries)))

	for _, entry := range r.entries {
		name := entry.component.Name()
		if err := entry.component.Start(ctx); err != nil {
			r.log.WithError(err).Error("Component start failed", logger.Fields(logger.FieldComponent, name))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		entry.started = true
		r.log.Debug("Component started", logger.Fields(logger.FieldComponent, name))
	}
	return nil
}

// StopAll stops started components in reverse registration order. Every
// component gets its own stop deadline; errors are joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Stopping all components")

	var errs []error
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if !entry.started {
			continue
		}

		name := entry.component.Name()
		stopCtx, cancel := context.WithTimeout(ctx, defaultStopTimeout)
		if err := entry.component.Stop(stopCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			r.log.WithError(err).Error("Component stop failed", logger.Fields(logger.FieldComponent, name))
		} else {
			r.log.Debug("Component stopped", logger.Fields(logger.FieldComponent, name))
		}
		entry.started = false
		cancel()
	}
	return stderrors.Join(errs...)
}

// Health checks every component implementing observability.HealthChecker,
// in registration order.
func (r *Registry) Health(ctx context.Context, service, version string) *observability.ServiceHealth {
	r.mu.RLock()
	checkers := make([]observability.HealthChecker, 0, len(r.entries))
	for _, entry := range r.entries {
		if hc, ok := entry.component.(observability.HealthChecker); ok {
			checkers = append(checkers, hc)
		}
	}
	r.mu.RUnlock()

	return observability.NewServiceHealth(service, version).Check(ctx, checkers...)
}

// Get returns a registered component by name, or nil if not found.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, exists := r.lookup[name]; exists {
		return entry.component
	}
	return nil
}
