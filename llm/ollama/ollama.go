// Package ollama implements llm.Provider against a local Ollama daemon.
package ollama

import (
	"context"
	"time"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/httpclient"
	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/provider"
	"github.com/kbukum/promptkit/security"
)

const (
	// ProviderName is the registered name for the Ollama provider.
	ProviderName = "ollama"

	generatePath = "/api/generate"
	chatPath     = "/api/chat"
	tagsPath     = "/api/tags"
)

// Provider implements llm.Provider using Ollama's HTTP API.
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

// New creates a new Ollama provider.
func New(cfg Config, opts ...Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Configuration("ollama: " + err.Error())
	}
	client, err := httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout, TLS: cfg.TLS})
	if err != nil {
		return nil, errors.Configuration("ollama: " + err.Error())
	}

	p := &Provider{cfg: cfg, client: client, log: logger.WithComponent(ProviderName)}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Factory returns a provider.Factory that creates Ollama Provider instances
// from a generic config map.
func Factory() provider.Factory[llm.Provider] {
	return func(cfg map[string]any) (llm.Provider, error) {
		oc := Config{}
		if v, ok := cfg["base_url"].(string); ok {
			oc.BaseURL = v
		}
		if v, ok := cfg["timeout"].(time.Duration); ok {
			oc.Timeout = v
		}
		if v, ok := cfg["tls"].(*security.TLSConfig); ok {
			oc.TLS = v
		}
		p, err := New(oc)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable checks if the Ollama server is reachable.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	_, err := httpclient.Get[tagsResponse](p.client, ctx, tagsPath)
	return err == nil
}

type options struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	Seed        *uint64 `json:"seed,omitempty"`
}

type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options options `json:"options"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  options       `json:"options"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message llm.Message `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error,omitempty"`
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// Complete sends a prompt-only request to /api/generate and a message
// request to /api/chat, never streaming.
func (p *Provider) Complete(ctx context.Context, req llm.GenerationRequest) (string, error) {
	opts := options{Temperature: req.Temperature, NumPredict: req.MaxTokens, Seed: req.Seed}
	fields := logger.Fields(logger.FieldModel, req.Model)
	if req.Seed != nil {
		fields[logger.FieldSeed] = *req.Seed
	}

	start := time.Now()
	var (
		text    string
		backend string
		err     error
	)
	if req.HasMessages() {
		text, backend, err = p.chat(ctx, chatRequest{Model: req.Model, Messages: req.Messages, Options: opts})
		fields[logger.FieldMessages] = len(req.Messages)
	} else {
		text, backend, err = p.generate(ctx, generateRequest{Model: req.Model, Prompt: req.Prompt, Options: opts})
	}

	log := p.log.WithContext(ctx)
	fields = logger.MergeWithDuration(fields, time.Since(start))
	if err != nil {
		fields[logger.FieldError] = err.Error()
		log.Error("ollama request failed", fields)
		return "", err
	}
	if backend != "" {
		err := errors.Provider(ProviderName, backend).WithDetail("model", req.Model)
		fields[logger.FieldError] = backend
		log.Error("ollama returned an error", fields)
		return "", err
	}
	log.Debug("ollama request ok", fields)
	return text, nil
}

func (p *Provider) generate(ctx context.Context, body generateRequest) (string, string, error) {
	resp, err := httpclient.Post[generateResponse](p.client, ctx, generatePath, body)
	if err != nil {
		return "", "", httpclient.ToAppError(ProviderName, err)
	}
	return resp.Data.Response, resp.Data.Error, nil
}

func (p *Provider) chat(ctx context.Context, body chatRequest) (string, string, error) {
	resp, err := httpclient.Post[chatResponse](p.client, ctx, chatPath, body)
	if err != nil {
		return "", "", httpclient.ToAppError(ProviderName, err)
	}
	return resp.Data.Message.Content, resp.Data.Error, nil
}

// ListModels returns the names of the locally installed models.
func (p *Provider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := httpclient.Get[tagsResponse](p.client, ctx, tagsPath)
	if err != nil {
		return nil, httpclient.ToAppError(ProviderName, err)
	}
	names := make([]string, 0, len(resp.Data.Models))
	for _, m := range resp.Data.Models {
		name := m.Name
		if name == "" {
			name = m.Model
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

var (
	_ llm.Provider    = (*Provider)(nil)
	_ llm.ModelLister = (*Provider)(nil)
)
