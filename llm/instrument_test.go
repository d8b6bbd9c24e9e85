package llm_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/llm/llmtest"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
)

func newTestMetrics(t *testing.T) (*observability.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return metrics, reader
}

func generationCounts(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "llm.generation.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				model, _ := dp.Attributes.Value(attribute.Key("model"))
				out[model.AsString()+"/"+status.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestInstrumentRecordsGenerations(t *testing.T) {
	metrics, reader := newTestMetrics(t)
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", &buf)

	stub := llmtest.Fixed("hello")
	stub.ProviderName = "moonshot"
	p := llm.Instrument(stub, log, metrics, "promptkit")

	if p.Name() != "moonshot" {
		t.Errorf("Name() = %q", p.Name())
	}
	res := llm.Generate(context.Background(), p, validRequest())
	if res.Text != "hello" {
		t.Fatalf("unexpected result %+v", res)
	}

	stub.Err = errors.RateLimited("")
	stub.Text = ""
	res = llm.Generate(context.Background(), p, validRequest())
	if res.OK() {
		t.Fatal("expected failure")
	}

	counts := generationCounts(t, reader)
	if counts["moonshot-v1-8k/ok"] != 1 {
		t.Errorf("ok count = %d (%v)", counts["moonshot-v1-8k/ok"], counts)
	}
	if counts["moonshot-v1-8k/RATE_LIMITED"] != 1 {
		t.Errorf("rate limited count = %d (%v)", counts["moonshot-v1-8k/RATE_LIMITED"], counts)
	}

	out := buf.String()
	if !strings.Contains(out, "provider execute ok") || !strings.Contains(out, "provider execute failed") {
		t.Errorf("expected both log lines, got %s", out)
	}
	if stub.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", stub.Calls())
	}
}

func TestInstrumentWithoutMetrics(t *testing.T) {
	stub := llmtest.Fixed("hi")
	stub.Unavailable = true
	p := llm.Instrument(stub, nil, nil, "promptkit")
	if p.IsAvailable(context.Background()) {
		t.Error("IsAvailable should delegate to the wrapped provider")
	}
	if res := llm.Generate(context.Background(), p, validRequest()); res.Text != "hi" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestListModelsUnwraps(t *testing.T) {
	stub := &llmtest.Provider{Models: []string{"qwen2.5:7b", "llama3"}}
	p := llm.Instrument(stub, logger.Nop(), nil, "promptkit")

	models, err := llm.ListModels(context.Background(), p)
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 || models[0] != "qwen2.5:7b" {
		t.Errorf("models = %v", models)
	}
}

type plainProvider struct{}

func (plainProvider) Name() string                     { return "plain" }
func (plainProvider) IsAvailable(context.Context) bool { return true }
func (plainProvider) Complete(context.Context, llm.GenerationRequest) (string, error) {
	return "", nil
}

func TestListModelsUnsupported(t *testing.T) {
	_, err := llm.ListModels(context.Background(), plainProvider{})
	if !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	reg := llm.NewRegistry()
	reg.RegisterFactory("stub", func(cfg map[string]any) (llm.Provider, error) {
		text, _ := cfg["text"].(string)
		return llmtest.Fixed(text), nil
	})
	p, err := reg.Create("stub", map[string]any{"text": "made"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	reg.Set("default", p)
	got, ok := reg.Get("default")
	if !ok {
		t.Fatal("expected cached instance")
	}
	if res := llm.Generate(context.Background(), got, validRequest()); res.Text != "made" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestCheckCredentialUnwraps(t *testing.T) {
	stub := &llmtest.Provider{CredentialErr: errors.MissingCredential("MOONSHOT_API_KEY")}
	p := llm.Instrument(stub, nil, nil, "promptkit")
	if !errors.IsConfiguration(llm.CheckCredential(p)) {
		t.Error("expected credential error through the instrumented wrapper")
	}
	if err := llm.CheckCredential(plainProvider{}); err != nil {
		t.Errorf("providers without credentials should pass, got %v", err)
	}
}
