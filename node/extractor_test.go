package node_test

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/llm/llmtest"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/node"
	"github.com/kbukum/promptkit/promptsynth"
	"github.com/kbukum/promptkit/seed"
)

var ollamaModels = []string{"qwen2.5:7b", "llama3"}

func extractParams(theme, promptType string) node.ExtractorParams {
	p := node.DefaultExtractorParams()
	p.Model = "qwen2.5:7b"
	p.Theme = theme
	p.PromptType = promptType
	return p
}

func newExtractor(stub *llmtest.Provider) *node.PromptExtractor {
	policy := seed.NewPolicy(rand.NewPCG(1, 2))
	return node.NewPromptExtractor(stub, policy, ollamaModels, node.WithLogger(logger.Nop()))
}

func TestExtractorMarkerSplit(t *testing.T) {
	stub := llmtest.Fixed("Prompt: A cat\nNegative Prompt: blurry")
	n := newExtractor(stub)

	res := n.Run(context.Background(), extractParams("a cat", string(promptsynth.TagSDXL)))
	if res.Err != nil {
		t.Fatalf("Run: %v", res.Err)
	}
	if res.PositivePrompt != "A cat" || res.NegativePrompt != "blurry" {
		t.Errorf("got %q / %q", res.PositivePrompt, res.NegativePrompt)
	}
	if res.Fallback {
		t.Error("marker split should not report fallback")
	}

	req, ok := stub.Last()
	if !ok {
		t.Fatal("provider not called")
	}
	if req.HasMessages() {
		t.Error("extractor should send a single prompt, not chat messages")
	}
	if !strings.Contains(req.Prompt, "\n\nHuman: 根据以下主题生成Stable Diffusion提示词：a cat\n\nAssistant:") {
		t.Errorf("unexpected prompt tail: %q", req.Prompt)
	}
	if req.Temperature != node.DefaultExtractorTemperature {
		t.Errorf("temperature = %v", req.Temperature)
	}
}

func TestExtractorShapeFallback(t *testing.T) {
	raw := "  a red fox in snow, Negative Prompt: ignored  "
	tests := []struct {
		tag      promptsynth.Tag
		negative string
	}{
		{promptsynth.TagKolors, "低质量，坏手，水印"},
		{promptsynth.TagFlux, "low quality, bad hands, watermark"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			n := newExtractor(llmtest.Fixed(raw))
			res := n.Run(context.Background(), extractParams("fox", string(tt.tag)))
			if res.Err != nil {
				t.Fatalf("Run: %v", res.Err)
			}
			if res.PositivePrompt != strings.TrimSpace(raw) {
				t.Errorf("positive = %q", res.PositivePrompt)
			}
			if res.NegativePrompt != tt.negative {
				t.Errorf("negative = %q, want %q", res.NegativePrompt, tt.negative)
			}
			if !res.Fallback {
				t.Error("expected fallback")
			}
		})
	}
}

func TestExtractorSeedDeterminism(t *testing.T) {
	stub := llmtest.Fixed("Prompt: x\nNegative Prompt: y")
	n := newExtractor(stub)
	ctx := context.Background()

	p := extractParams("t", string(promptsynth.TagSDXL))
	p.Seed = seed.Fixed(5)
	a := n.Run(ctx, p)
	b := n.Run(ctx, p)
	if a.Seed != 5 || b.Seed != 5 {
		t.Errorf("fixed seed not passed through: %d, %d", a.Seed, b.Seed)
	}
	if a.PositivePrompt != b.PositivePrompt || a.NegativePrompt != b.NegativePrompt {
		t.Error("identical inputs should give identical outputs")
	}
	req, _ := stub.Last()
	if req.Seed == nil || *req.Seed != 5 {
		t.Errorf("request seed = %v", req.Seed)
	}

	p.Seed = seed.Random()
	r1 := n.Run(ctx, p)
	r2 := n.Run(ctx, p)
	if r1.Seed == r2.Seed {
		t.Errorf("random seeds should differ, both %d", r1.Seed)
	}
	req, _ = stub.Last()
	if req.Seed == nil || *req.Seed != r2.Seed {
		t.Error("the reported seed must be the one sent to the backend")
	}
}

func TestExtractorExtraModelOverride(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		want  string
	}{
		{"none keeps model", node.NoExtraModel, "qwen2.5:7b"},
		{"empty keeps model", "", "qwen2.5:7b"},
		{"override", "mistral:latest", "mistral:latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := llmtest.Fixed("x")
			n := newExtractor(stub)
			p := extractParams("t", string(promptsynth.TagFlux))
			p.ExtraModel = tt.extra
			res := n.Run(context.Background(), p)
			if res.Model != tt.want {
				t.Errorf("result model = %q, want %q", res.Model, tt.want)
			}
			req, _ := stub.Last()
			if req.Model != tt.want {
				t.Errorf("request model = %q, want %q", req.Model, tt.want)
			}
		})
	}
}

func TestExtractorErrors(t *testing.T) {
	tests := []struct {
		name   string
		stub   *llmtest.Provider
		params node.ExtractorParams
		want   errors.ErrorCode
	}{
		{
			name:   "unknown prompt type",
			stub:   llmtest.Fixed("unused"),
			params: extractParams("t", "midjourney"),
			want:   errors.ErrCodeConfiguration,
		},
		{
			name: "no models found",
			stub: llmtest.Fixed("unused"),
			params: func() node.ExtractorParams {
				p := extractParams("t", "sdxl")
				p.Model = node.NoModelsFound
				return p
			}(),
			want: errors.ErrCodeConfiguration,
		},
		{
			name: "max tokens above bound",
			stub: llmtest.Fixed("unused"),
			params: func() node.ExtractorParams {
				p := extractParams("t", "sdxl")
				p.MaxTokens = node.MaxExtractorTokens + 1
				return p
			}(),
			want: errors.ErrCodeInvalidInput,
		},
		{
			name:   "backend failure",
			stub:   llmtest.Failing(errors.Transport("ollama", context.DeadlineExceeded)),
			params: extractParams("t", "sdxl"),
			want:   errors.ErrCodeTransport,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newExtractor(tt.stub).Run(context.Background(), tt.params)
			if code := errors.CodeOf(res.Err); code != tt.want {
				t.Fatalf("code = %s, want %s (%v)", code, tt.want, res.Err)
			}
			if !strings.HasPrefix(res.PositivePrompt, "Error: ") {
				t.Errorf("positive should carry the error, got %q", res.PositivePrompt)
			}
			if res.NegativePrompt != "" {
				t.Errorf("negative should be empty on error, got %q", res.NegativePrompt)
			}
		})
	}
}

func TestExtractorParamsJSON(t *testing.T) {
	p := node.DefaultExtractorParams()
	body := `{"model":"llama3","theme":"sea","prompt_type":"kolors","seed":42}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v, ok := p.Seed.Value(); !ok || v != 42 {
		t.Errorf("seed = %v", p.Seed)
	}
	if p.ExtraModel != node.NoExtraModel || p.MaxTokens != node.DefaultMaxTokens {
		t.Errorf("defaults lost: %+v", p)
	}
	if p.Temperature != node.DefaultExtractorTemperature {
		t.Errorf("temperature = %v", p.Temperature)
	}
}

func TestExtractorDescriptor(t *testing.T) {
	d := newExtractor(llmtest.Fixed("")).Describe()
	if d.ClassName != node.ClassPromptExtractor || d.Category != node.CategoryPromptUtils {
		t.Errorf("unexpected descriptor %+v", d)
	}
	pt, ok := d.Inputs.Lookup("prompt_type")
	if !ok || strings.Join(pt.Choices, ",") != "sdxl,kolors,flux" {
		t.Errorf("prompt_type choices = %v", pt.Choices)
	}
	s, _ := d.Inputs.Lookup("seed")
	if s.Default != -1 {
		t.Errorf("seed default = %v", s.Default)
	}
	if strings.Join(d.Outputs, ",") != "positive_prompt,negative_prompt" {
		t.Errorf("outputs = %v", d.Outputs)
	}

	empty := node.NewPromptExtractor(llmtest.Fixed(""), nil, nil).Describe()
	m, _ := empty.Inputs.Lookup("model")
	if len(m.Choices) != 1 || m.Choices[0] != node.NoModelsFound {
		t.Errorf("model choices = %v", m.Choices)
	}
}

func TestDiscoverModels(t *testing.T) {
	ctx := context.Background()
	if got := node.DiscoverModels(ctx, &llmtest.Provider{Models: ollamaModels}, logger.Nop()); len(got) != 2 {
		t.Errorf("models = %v", got)
	}
	failing := &llmtest.Provider{ModelsErr: errors.Transport("ollama", context.Canceled)}
	if got := node.DiscoverModels(ctx, failing, logger.Nop()); len(got) != 1 || got[0] != node.NoModelsFound {
		t.Errorf("models = %v", got)
	}
	if got := node.DiscoverModels(ctx, &llmtest.Provider{}, logger.Nop()); got[0] != node.NoModelsFound {
		t.Errorf("models = %v", got)
	}
}

func TestCatalog(t *testing.T) {
	stub := llmtest.Fixed("")
	cat := node.NewCatalog(
		node.NewSingleChat(stub, chatModels),
		node.NewMultiChat(stub, chatModels),
		newExtractor(stub),
	)
	if got := len(cat.Descriptors()); got != 3 {
		t.Fatalf("descriptors = %d", got)
	}
	n, ok := cat.Lookup(node.ClassMultiChat)
	if !ok {
		t.Fatal("multi chat not found")
	}
	if _, isMulti := n.(*node.MultiChat); !isMulti {
		t.Errorf("lookup returned %T", n)
	}
	if _, ok := cat.Lookup("Nope"); ok {
		t.Error("unexpected hit")
	}
}
