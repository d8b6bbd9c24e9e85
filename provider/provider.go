package provider

import "context"

// Provider is a named backend. IsAvailable is a cheap readiness probe used
// by health checks; it must not spend a generation.
type Provider interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// Factory builds a backend from its settings section, e.g. the api_key,
// base_url and timeout values bootstrap reads from the moonshot config.
type Factory[T Provider] func(settings map[string]any) (T, error)
