package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/folio/agent"
	"github.com/etnz/folio/config"
	"github.com/etnz/folio/docs"
	"github.com/etnz/folio/eodhd"
	"github.com/etnz/folio/ghostfolio"
	"github.com/etnz/folio/mock"
	"github.com/etnz/folio/router"
	"github.com/etnz/folio/session"
	"github.com/etnz/folio/telemetry"
	"github.com/etnz/folio/tools"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// app holds everything a subcommand needs to answer questions.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	agents map[string]*agent.Agent // by data source
	store  session.Store

	shutdown func(context.Context) error
}

// newApp wires the assistant described by cfg.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := telemetry.InitLogger(cfg.LogLevel, cfg.LogPretty)

	shutdown, err := telemetry.SetupTracing(ctx, cfg.TracingExporter)
	if err != nil {
		return nil, err
	}

	var opts []agent.Option
	opts = append(opts, agent.WithLogger(logger))
	if cfg.LLMEnabled {
		r, err := newAutomated(ctx, cfg, logger)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		opts = append(opts, agent.WithAutomated(r, docs.Policy()))
	}

	agents := map[string]*agent.Agent{
		config.Mock: agent.New(tools.NewOrchestrator(tools.NewRegistry(mock.New())), opts...),
	}
	if cfg.GhostfolioToken != "" {
		agents[config.GhostfolioAPI] = agent.New(tools.NewOrchestrator(tools.NewRegistry(newGhostfolio(cfg))), opts...)
	}

	store, err := session.Open(cfg.SessionDSN)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("cannot open sessions: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		agents:   agents,
		store:    store,
		shutdown: shutdown,
	}, nil
}

// loadApp loads the configuration from the environment and wires the app.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg)
}

// newAutomated returns the Gemini router behind a circuit breaker.
func newAutomated(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (router.Automated, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot initialize Gemini's client: %w", err)
	}
	return agent.NewBreaker(agent.NewGeminiRouter(client, cfg.GeminiModel), logger), nil
}

// newGhostfolio returns the Ghostfolio API provider, with EODHD quotes when a
// key is configured.
func newGhostfolio(cfg *config.Config) *ghostfolio.Provider {
	c := ghostfolio.New(cfg.GhostfolioBaseURL, cfg.GhostfolioToken,
		ghostfolio.WithTimeout(cfg.GhostfolioTimeout),
		ghostfolio.WithRateLimit(cfg.GhostfolioRate),
	)
	var quotes ghostfolio.Quoter
	if cfg.EODHDAPIKey != "" {
		quotes = eodhd.New(cfg.EODHDAPIKey)
	}
	return ghostfolio.NewProvider(c, quotes)
}

// agent returns the agent of a data source, the default one when source is
// empty.
func (a *app) agent(source string) (*agent.Agent, error) {
	if source == "" {
		source = a.cfg.DefaultDataSource
	}
	if err := a.cfg.ValidateDataSource(source); err != nil {
		return nil, err
	}
	ag, ok := a.agents[source]
	if !ok {
		return nil, fmt.Errorf("data source %q is not configured", source)
	}
	return ag, nil
}

// Close releases the session store and flushes traces.
func (a *app) Close(ctx context.Context) error {
	return errors.Join(a.store.Close(), a.shutdown(ctx))
}
