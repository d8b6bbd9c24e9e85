package observability

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry owns the tracer and meter providers created by Setup.
type Telemetry struct {
	Metrics *Metrics

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// Setup initializes tracing and metrics from cfg. When cfg.Enabled is false
// nothing is exported and Metrics records into a no-op meter.
func Setup(ctx context.Context, cfg Config) (*Telemetry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !cfg.Enabled {
		m, err := NewMetrics(noop.NewMeterProvider().Meter(cfg.ServiceName))
		if err != nil {
			return nil, err
		}
		return &Telemetry{Metrics: m}, nil
	}

	tp, err := InitTracer(ctx, cfg.TracerConfig())
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg.MeterConfig())
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	m, err := NewMetrics(mp.Meter(cfg.ServiceName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, err
	}
	return &Telemetry{Metrics: m, tp: tp, mp: mp}, nil
}

// Shutdown flushes and stops both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	return stderrors.Join(errs...)
}
