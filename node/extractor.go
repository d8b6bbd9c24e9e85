package node

import (
	"context"
	"slices"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
	"github.com/kbukum/promptkit/promptsynth"
	"github.com/kbukum/promptkit/seed"
	"github.com/kbukum/promptkit/validation"
)

// ExtractorParams are the prompt extractor inputs.
type ExtractorParams struct {
	Model       string    `json:"model"`
	ExtraModel  string    `json:"extra_model"`
	Theme       string    `json:"theme"`
	MaxTokens   int       `json:"max_tokens" validate:"gte=1,lte=32768"`
	Temperature float64   `json:"temperature" validate:"gte=0,lte=2"`
	PromptType  string    `json:"prompt_type"`
	Seed        seed.Seed `json:"seed"`
}

// DefaultExtractorParams returns ExtractorParams holding the schema
// defaults, including the random seed.
func DefaultExtractorParams() ExtractorParams {
	return ExtractorParams{
		ExtraModel:  NoExtraModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultExtractorTemperature,
		PromptType:  string(promptsynth.TagSDXL),
		Seed:        seed.Random(),
	}
}

// EffectiveModel is ExtraModel unless it is empty or "none".
func (p ExtractorParams) EffectiveModel() string {
	if p.ExtraModel != "" && p.ExtraModel != NoExtraModel {
		return p.ExtraModel
	}
	return p.Model
}

// ExtractResult is the prompt extractor output.
type ExtractResult struct {
	// PositivePrompt holds the "Error: ..." text when Err is set.
	PositivePrompt string `json:"positive_prompt"`
	NegativePrompt string `json:"negative_prompt"`
	// Seed is the resolved seed sent to the backend.
	Seed       uint64 `json:"seed"`
	Model      string `json:"model,omitempty"`
	PromptType string `json:"prompt_type,omitempty"`
	// Fallback reports that the negative prompt is the template default.
	Fallback bool  `json:"fallback"`
	Err      error `json:"-"`
}

// PromptExtractor asks a model for image prompts on a theme.
type PromptExtractor struct {
	provider llm.Provider
	policy   *seed.Policy
	catalog  *promptsynth.Catalog
	models   []string
	opts     options
}

// NewPromptExtractor creates the extractor. A nil policy gets its own
// entropy-seeded source.
func NewPromptExtractor(p llm.Provider, policy *seed.Policy, models []string, opts ...Option) *PromptExtractor {
	if policy == nil {
		policy = seed.NewPolicy(nil)
	}
	return &PromptExtractor{
		provider: p,
		policy:   policy,
		catalog:  promptsynth.DefaultCatalog(),
		models:   slices.Clone(models),
		opts:     buildOptions(ClassPromptExtractor, opts),
	}
}

// Describe returns the node metadata.
func (n *PromptExtractor) Describe() Descriptor {
	return Descriptor{
		ClassName:   ClassPromptExtractor,
		DisplayName: "Ollama Prompt Extractor",
		Category:    CategoryPromptUtils,
		Inputs:      ExtractorInputs(n.models, promptsynth.Tags()),
		Outputs:     []string{"positive_prompt", "negative_prompt"},
	}
}

// Run selects the template for PromptType, sends one completion with the
// resolved seed and splits the answer.
func (n *PromptExtractor) Run(ctx context.Context, params ExtractorParams) ExtractResult {
	r := startRun(ctx, ClassPromptExtractor, n.opts.log)
	model := params.EffectiveModel()
	fields := logger.Fields(logger.FieldModel, model, logger.FieldDomainTag, params.PromptType)
	out := ExtractResult{Model: model, PromptType: params.PromptType}

	fail := func(err error) ExtractResult {
		r.finish(err, fields)
		out.PositivePrompt = errors.Text(err)
		out.NegativePrompt = ""
		out.Err = err
		return out
	}

	if n.provider == nil {
		return fail(errors.Configuration("no provider configured"))
	}
	if err := validation.Validate(params); err != nil {
		return fail(err)
	}
	if model == "" || model == NoModelsFound {
		return fail(errors.UnknownModel(model))
	}
	tmpl, err := n.catalog.Select(params.PromptType)
	if err != nil {
		return fail(err)
	}

	resolved := n.policy.Resolve(params.Seed)
	out.Seed = resolved
	fields[logger.FieldSeed] = resolved
	observability.SetSpanAttribute(r.ctx, observability.AttrSeed, resolved)
	observability.SetSpanAttribute(r.ctx, observability.AttrDomainTag, params.PromptType)

	res := llm.Generate(r.ctx, n.provider, llm.GenerationRequest{
		Model:       model,
		Prompt:      tmpl.Compose(params.Theme),
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Seed:        &resolved,
	})
	if res.Err != nil {
		return fail(res.Err)
	}

	parsed := promptsynth.Parse(res.Text, tmpl)
	out.PositivePrompt = parsed.Positive
	out.NegativePrompt = parsed.Negative
	out.Fallback = parsed.Fallback
	fields["fallback"] = parsed.Fallback
	r.finish(nil, fields)
	return out
}

// DiscoverModels lists p's models. Any failure, or an empty list, yields
// the single NoModelsFound choice.
func DiscoverModels(ctx context.Context, p llm.Provider, log *logger.Logger) []string {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	models, err := llm.ListModels(ctx, p)
	if err != nil {
		log.WithComponent("node").WithError(err).Warn("model discovery failed")
		return []string{NoModelsFound}
	}
	if len(models) == 0 {
		log.WithComponent("node").Warn("model discovery returned no models")
		return []string{NoModelsFound}
	}
	return models
}
