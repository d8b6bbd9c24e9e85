package bootstrap

import (
	"math/rand/v2"
	"time"

	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	providers       map[string]llm.Provider
	seedSource      rand.Source
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{providers: map[string]llm.Provider{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, the global logger is
// initialized from the config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithProvider replaces the backend registered under name instead of
// building it from config. The replacement is still instrumented.
func WithProvider(name string, p llm.Provider) Option {
	return func(o *appOptions) {
		o.providers[name] = p
	}
}

// WithSeedSource sets the source the extractor draws random seeds from.
func WithSeedSource(src rand.Source) Option {
	return func(o *appOptions) {
		o.seedSource = src
	}
}
