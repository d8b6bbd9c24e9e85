package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs during startup or shutdown.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run after every component has started but
// before the ready check.
func (a *App) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnReady registers hooks that run once the ready check has been reported.
func (a *App) OnReady(hooks ...Hook) {
	a.onReady = append(a.onReady, hooks...)
}

// OnStop registers hooks that run during shutdown before components are
// stopped.
func (a *App) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks in order, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
