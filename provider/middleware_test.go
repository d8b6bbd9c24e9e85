package provider_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
	"github.com/kbukum/promptkit/provider"
)

func bufferLogger(level string) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewWithWriter(&logger.Config{Level: level, Format: logger.FormatJSON}, "test", &buf), &buf
}

func newMetrics(t *testing.T) *observability.Metrics {
	t.Helper()
	metrics, err := observability.NewMetrics(observability.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return metrics
}

type failingProvider struct{}

func (p *failingProvider) Name() string                       { return "fail" }
func (p *failingProvider) IsAvailable(_ context.Context) bool { return false }
func (p *failingProvider) Execute(_ context.Context, _ string) (string, error) {
	return "", errors.RateLimited("slow down")
}

// --- Chain tests ---

func TestChain_Empty(t *testing.T) {
	wrapped := provider.Chain[string, string]()(&echoProvider{name: "test"})
	if wrapped.Name() != "test" {
		t.Fatalf("expected 'test', got %q", wrapped.Name())
	}
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, err %v", result, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string

	mw := func(tag string) provider.Middleware[string, string] {
		return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
			return provider.Func(inner.Name(), func(ctx context.Context, in string) (string, error) {
				order = append(order, tag+":before")
				out, err := inner.Execute(ctx, in)
				order = append(order, tag+":after")
				return out, err
			}, inner.IsAvailable)
		}
	}

	wrapped := provider.Chain(mw("A"), mw("B"), mw("C"))(&echoProvider{name: "test"})
	if _, err := wrapped.Execute(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "C:before", "C:after", "B:after", "A:after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, order)
	}
}

// --- WithLogging tests ---

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		inner     provider.RequestResponse[string, string]
		wantLevel string
		wantMsg   string
	}{
		{"success logs debug", &echoProvider{name: "moonshot"}, `"level":"debug"`, "provider execute ok"},
		{"failure logs error", &failingProvider{}, `"level":"error"`, "provider execute failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := bufferLogger("debug")
			wrapped := provider.WithLogging[string, string](log)(tc.inner)
			_, _ = wrapped.Execute(logger.ContextWithRequestID(context.Background(), "req-9"), "hello")

			out := buf.String()
			for _, want := range []string{tc.wantLevel, tc.wantMsg, `"provider":"` + tc.inner.Name() + `"`, `"request_id":"req-9"`, `"duration_ms"`} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %s in log output %s", want, out)
				}
			}
		})
	}
}

func TestWithLogging_Delegates(t *testing.T) {
	log, _ := bufferLogger("info")
	wrapped := provider.WithLogging[string, string](log)(&failingProvider{})
	if wrapped.Name() != "fail" || wrapped.IsAvailable(context.Background()) {
		t.Fatal("expected Name and IsAvailable to delegate to inner provider")
	}
}

// --- WithTracing tests ---

func TestWithTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ok := provider.WithTracing[string, string]("promptkit")(&echoProvider{name: "ollama"})
	if _, err := ok.Execute(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := provider.WithTracing[string, string]("promptkit")(&failingProvider{})
	if _, err := bad.Execute(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name != "promptkit.ollama" || spans[1].Name != "promptkit.fail" {
		t.Errorf("unexpected span names %q, %q", spans[0].Name, spans[1].Name)
	}
	if len(spans[1].Events) == 0 {
		t.Error("expected error event on failing span")
	}
}

// --- WithMetrics tests ---

func TestWithMetrics(t *testing.T) {
	metrics := newMetrics(t)

	wrapped := provider.WithMetrics[string, string](metrics)(&echoProvider{name: "metrics-test"})
	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, %v", result, err)
	}

	failing := provider.WithMetrics[string, string](metrics)(&failingProvider{})
	_, err = failing.Execute(context.Background(), "hello")
	if errors.CodeOf(err) != errors.ErrCodeRateLimited {
		t.Fatalf("expected error to pass through unchanged, got %v", err)
	}
	if failing.IsAvailable(context.Background()) {
		t.Fatal("expected IsAvailable to delegate to inner provider")
	}
}

// --- Full composition ---

func TestChain_AllMiddlewares(t *testing.T) {
	log, buf := bufferLogger("debug")
	wrapped := provider.Chain(
		provider.WithLogging[string, string](log),
		provider.WithMetrics[string, string](newMetrics(t)),
		provider.WithTracing[string, string]("test-svc"),
	)(&echoProvider{name: "full-stack"})

	result, err := wrapped.Execute(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q", result)
	}
	if !strings.Contains(buf.String(), "full-stack") {
		t.Errorf("expected outer logging to see provider name, got %s", buf.String())
	}
}
