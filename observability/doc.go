// Package observability wires OpenTelemetry tracing and metrics for
// promptkit.
//
// Setup builds both providers from Config, exporting over OTLP/HTTP. With
// observability disabled it still returns usable no-op Metrics so callers
// never branch on configuration:
//
//	tel, err := observability.Setup(ctx, cfg.Observability)
//	defer tel.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "node.single_chat")
//	defer span.End()
//	tel.Metrics.RecordOperation(ctx, "moonshot", "complete", "ok", d)
package observability
