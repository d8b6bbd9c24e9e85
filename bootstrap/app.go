package bootstrap

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/promptkit/auth"
	"github.com/kbukum/promptkit/component"
	"github.com/kbukum/promptkit/config"
	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/llm/moonshot"
	"github.com/kbukum/promptkit/llm/ollama"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/node"
	"github.com/kbukum/promptkit/observability"
	"github.com/kbukum/promptkit/provider"
	"github.com/kbukum/promptkit/seed"
	"github.com/kbukum/promptkit/server"
	"github.com/kbukum/promptkit/server/endpoint"
	"github.com/kbukum/promptkit/util"
	"github.com/kbukum/promptkit/version"
)

// discoverTimeout bounds the Ollama model probe made while building the
// extractor.
const discoverTimeout = 5 * time.Second

// App holds the assembled promptkit process: providers, nodes and the
// component registry that owns their lifecycle.
//
// Example:
//
//	app, err := bootstrap.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if _, err := app.EnableServer(); err != nil {
//	    return err
//	}
//	return app.Run(ctx)
type App struct {
	Name       string
	Version    string
	Cfg        *config.Config
	Logger     *logger.Logger
	Telemetry  *observability.Telemetry
	Components *component.Registry
	Providers  *provider.Registry[llm.Provider]

	Catalog   *node.Catalog
	Single    *node.SingleChat
	Multi     *node.MultiChat
	Extractor *node.PromptExtractor
	Server    *server.Server

	chatModels      []string
	gracefulTimeout time.Duration

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// New validates cfg and builds every provider and node. Nothing is started
// until Run or RunTask.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	o := resolveOptions(opts)

	app := &App{
		Name:            cfg.Name,
		Version:         version.Version,
		Cfg:             cfg,
		Providers:       llm.NewRegistry(),
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging, cfg.Name)
		app.Logger = logger.GetGlobalLogger()
	}
	app.Components = component.NewRegistry(app.Logger)

	if cfg.Observability.ServiceVersion == "" {
		cfg.Observability.ServiceVersion = app.Version
	}
	tel, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("telemetry setup: %w", err)
	}
	app.Telemetry = tel
	if err := app.Components.Register(component.Func{
		ComponentName: "telemetry",
		StopFunc:      tel.Shutdown,
	}); err != nil {
		return nil, err
	}

	if err := app.buildProviders(o.providers); err != nil {
		return nil, err
	}
	app.buildNodes(ctx, o.seedSource)
	return app, nil
}

// buildProviders creates the Moonshot and Ollama backends from config,
// unless overridden, and instruments them.
func (a *App) buildProviders(overrides map[string]llm.Provider) error {
	a.Providers.RegisterFactory(moonshot.ProviderName, moonshot.Factory())
	a.Providers.RegisterFactory(ollama.ProviderName, ollama.Factory())

	settings := map[string]map[string]any{
		moonshot.ProviderName: {
			"api_key":  a.Cfg.Moonshot.APIKey,
			"base_url": a.Cfg.Moonshot.BaseURL,
			"timeout":  a.Cfg.Moonshot.Timeout,
			"models":   a.Cfg.Moonshot.Models,
			"tls":      a.Cfg.Moonshot.TLS,
		},
		ollama.ProviderName: {
			"base_url": a.Cfg.Ollama.BaseURL,
			"timeout":  a.Cfg.Ollama.Timeout,
			"tls":      a.Cfg.Ollama.TLS,
		},
	}

	log := a.Logger.WithComponent("llm")
	for _, name := range a.Providers.List() {
		p, ok := overrides[name]
		if !ok {
			var err error
			if p, err = a.Providers.Create(name, settings[name]); err != nil {
				return fmt.Errorf("create %s provider: %w", name, err)
			}
		}
		if name == ollama.ProviderName && a.Cfg.Ollama.MaxConcurrent > 0 {
			p = llm.Limit(p, a.Cfg.Ollama.MaxConcurrent, a.Cfg.Ollama.QueueTimeout)
		}
		inst := llm.Instrument(p, log, a.Telemetry.Metrics, a.Name)
		a.Providers.Set(name, inst)
		if err := a.Components.Register(component.NewBackend(inst)); err != nil {
			return err
		}
	}
	a.chatModels = a.Cfg.Moonshot.Models

	credential := "unset"
	if key := a.Cfg.Moonshot.APIKey; key != "" {
		credential = util.MaskSecret(key, 5)
	}
	log.Info("LLM backends configured", map[string]interface{}{
		"moonshot_base_url":   a.Cfg.Moonshot.BaseURL,
		"moonshot_api_key":    credential,
		"ollama_base_url":     a.Cfg.Ollama.BaseURL,
		"ollama_max_inflight": a.Cfg.Ollama.MaxConcurrent,
	})
	return nil
}

func (a *App) buildNodes(ctx context.Context, src rand.Source) {
	chat := a.Provider(moonshot.ProviderName)
	gen := a.Provider(ollama.ProviderName)
	log := node.WithLogger(a.Logger)

	probeCtx, cancel := context.WithTimeout(ctx, discoverTimeout)
	models := node.DiscoverModels(probeCtx, gen, a.Logger.WithComponent("node"))
	cancel()

	a.Single = node.NewSingleChat(chat, a.chatModels, log)
	a.Multi = node.NewMultiChat(chat, a.chatModels, log)
	a.Extractor = node.NewPromptExtractor(gen, seed.NewPolicy(src), models, log)
	a.Catalog = node.NewCatalog(a.Single, a.Multi, a.Extractor)
}

// Provider returns the instrumented backend registered under name, or nil.
func (a *App) Provider(name string) llm.Provider {
	p, _ := a.Providers.Get(name)
	return p
}

// Health reports the aggregated component health.
func (a *App) Health(ctx context.Context) *observability.ServiceHealth {
	return a.Components.Health(ctx, a.Name, a.Version)
}

// EnableServer builds the HTTP surface and registers it as a component.
// Bearer auth guards /v1 when server.jwt_secret is set.
func (a *App) EnableServer() (*server.Server, error) {
	if a.Server != nil {
		return a.Server, nil
	}
	cfg := a.Cfg.Server
	srv := server.New(cfg, a.Logger)
	srv.ApplyMiddleware(a.Name, a.Telemetry.Metrics)

	routes := server.Routes{
		Service:   a.Name,
		Version:   a.Version,
		Health:    a.Health,
		Catalog:   a.Catalog,
		Single:    a.Single,
		Multi:     a.Multi,
		Extractor: a.Extractor,
		Models:    a.modelSources(),
	}
	if cfg.JWTSecret != "" {
		tokens, err := a.TokenService()
		if err != nil {
			return nil, err
		}
		routes.Validator = tokens
	}
	srv.RegisterRoutes(routes)

	if err := a.Components.Register(server.NewComponent(srv)); err != nil {
		return nil, err
	}
	a.Server = srv
	return srv, nil
}

// TokenService returns the JWT service keyed by server.jwt_secret.
func (a *App) TokenService() (*auth.Service, error) {
	return auth.NewService(auth.Config{Secret: a.Cfg.Server.JWTSecret, Issuer: a.Name})
}

func (a *App) modelSources() []endpoint.ModelSource {
	gen := a.Provider(ollama.ProviderName)
	log := a.Logger.WithComponent("node")
	return []endpoint.ModelSource{
		{Provider: moonshot.ProviderName, List: func(context.Context) []string { return a.chatModels }},
		{Provider: ollama.ProviderName, List: func(ctx context.Context) []string {
			return node.DiscoverModels(ctx, gen, log)
		}},
	}
}

// ReadyCheck verifies that every health-reporting component is up.
func (a *App) ReadyCheck(ctx context.Context) error {
	h := a.Health(ctx)
	var unhealthy []string
	for _, c := range h.Components {
		if c.Status != observability.HealthStatusUp {
			detail := c.Name + "=" + string(c.Status)
			if c.Message != "" {
				detail += "(" + c.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts every component, blocks until a signal or ctx is done, then
// shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		_ = a.stop()
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask runs a finite task with the same lifecycle as Run. SIGINT and
// SIGTERM cancel the task context.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		_ = a.stop()
		return err
	}

	taskCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	// a missing API key or a stopped Ollama daemon is reported, not fatal
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Logger.Info("Application started", logger.MergeWithDuration(map[string]interface{}{
		"nodes": len(a.Catalog.Descriptors()),
	}, time.Since(start)))
	return nil
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// stop runs the OnStop hooks and stops every component within the
// graceful timeout.
func (a *App) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
		shutdownErr = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
