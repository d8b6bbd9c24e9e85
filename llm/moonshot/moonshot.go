// Package moonshot implements llm.Provider against the Moonshot
// OpenAI-compatible chat completions API.
package moonshot

import (
	"context"
	"slices"
	"time"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/httpclient"
	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/provider"
	"github.com/kbukum/promptkit/security"
)

const (
	// ProviderName is the registered name for the Moonshot provider.
	ProviderName = "moonshot"
	// CredentialKey names the API key in config files and the environment.
	CredentialKey = "MOONSHOT_API_KEY"

	chatPath = "/chat/completions"
)

// Provider implements llm.Provider using Moonshot's HTTP API.
type Provider struct {
	cfg    Config
	client *httpclient.Client
	log    *logger.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the provider's logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Provider) { p.log = l.WithComponent(ProviderName) }
}

// New creates a Moonshot provider.
func New(cfg Config, opts ...Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Configuration("moonshot: " + err.Error())
	}

	hc := httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout, TLS: cfg.TLS}
	if cfg.APIKey != "" {
		hc.Auth = httpclient.BearerAuth(cfg.APIKey)
	}
	client, err := httpclient.New(hc)
	if err != nil {
		return nil, errors.Configuration("moonshot: " + err.Error())
	}

	p := &Provider{cfg: cfg, client: client, log: logger.WithComponent(ProviderName)}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Factory returns a provider.Factory that creates Moonshot providers from a
// generic config map.
func Factory() provider.Factory[llm.Provider] {
	return func(cfg map[string]any) (llm.Provider, error) {
		mc := Config{}
		if v, ok := cfg["api_key"].(string); ok {
			mc.APIKey = v
		}
		if v, ok := cfg["base_url"].(string); ok {
			mc.BaseURL = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			mc.Timeout = v
		}
		if v, ok := cfg["models"].([]string); ok {
			mc.Models = v
		}
		if v, ok := cfg["tls"].(*security.TLSConfig); ok {
			mc.TLS = v
		}
		p, err := New(mc)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured. The remote API is
// not probed.
func (p *Provider) IsAvailable(context.Context) bool { return p.cfg.APIKey != "" }

// CheckCredential fails with a configuration error when no API key is set.
func (p *Provider) CheckCredential() error {
	if p.cfg.APIKey == "" {
		return errors.MissingCredential(CredentialKey)
	}
	return nil
}

// ListModels returns the configured model identifiers.
func (p *Provider) ListModels(context.Context) ([]string, error) {
	return slices.Clone(p.cfg.Models), nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Seed        *uint64       `json:"seed,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      llm.Message `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends req to /chat/completions and returns the first choice.
// A prompt-only request is sent as a single user message.
func (p *Provider) Complete(ctx context.Context, req llm.GenerationRequest) (string, error) {
	if err := p.CheckCredential(); err != nil {
		return "", err
	}
	if len(p.cfg.Models) > 0 && !slices.Contains(p.cfg.Models, req.Model) {
		return "", errors.UnknownModel(req.Model)
	}

	messages := req.Messages
	if !req.HasMessages() {
		messages = []llm.Message{{Role: llm.RoleUser, Content: req.Prompt}}
	}
	body := chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Seed:        req.Seed,
	}

	start := time.Now()
	log := p.log.WithContext(ctx)
	fields := logger.Fields(logger.FieldModel, req.Model, logger.FieldMessages, len(messages))

	resp, err := httpclient.Post[chatResponse](p.client, ctx, chatPath, body)
	if err != nil {
		appErr := httpclient.ToAppError(ProviderName, err)
		fields[logger.FieldError] = appErr.Error()
		log.Error("chat completion failed", logger.MergeWithDuration(fields, time.Since(start)))
		return "", appErr
	}
	if len(resp.Data.Choices) == 0 {
		err := errors.Provider(ProviderName, "response contained no choices").WithDetail("model", req.Model)
		log.Error("chat completion returned no choices", logger.MergeWithDuration(fields, time.Since(start)))
		return "", err
	}

	fields["tokens"] = resp.Data.Usage.TotalTokens
	log.Debug("chat completion ok", logger.MergeWithDuration(fields, time.Since(start)))
	return resp.Data.Choices[0].Message.Content, nil
}

var (
	_ llm.Provider          = (*Provider)(nil)
	_ llm.ModelLister       = (*Provider)(nil)
	_ llm.CredentialChecker = (*Provider)(nil)
)
