package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jonathan/onepager/internal/compress"
	"github.com/jonathan/onepager/internal/config"
	"github.com/jonathan/onepager/internal/engine"
	"github.com/jonathan/onepager/internal/fitting"
	"github.com/jonathan/onepager/internal/llm"
	"github.com/jonathan/onepager/internal/observability"
	"github.com/jonathan/onepager/internal/optimizer"
	"github.com/jonathan/onepager/internal/pipeline"
	"github.com/jonathan/onepager/internal/rendering"
	"github.com/jonathan/onepager/internal/store"
	"github.com/jonathan/onepager/internal/strategy"
	"github.com/sirupsen/logrus"
)

// app holds the process-wide collaborators shared by serve and render.
type app struct {
	config  *config.Config
	logger  *logrus.Logger
	engine  *engine.Pool
	llm     llm.Client
	db      *sql.DB
	service *pipeline.Service
}

// loadConfig reads the --config file and environment and builds the logger.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newApp wires the generation pipeline. The generation log store is only
// connected when withStore is set and a database URL is configured.
func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger, withStore bool) (*app, error) {
	a := &app{config: cfg, logger: logger}

	client, err := newLLMClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.llm = client
	compressor := compress.New(client, logger, compress.Timeouts{
		Field:        cfg.FieldTimeout.Std(),
		Achievements: cfg.AchievementsTimeout.Std(),
	})
	opt := optimizer.New(compressor, logger)

	engineCfg := engine.DefaultConfig()
	engineCfg.ChromePath = cfg.ChromePath
	engineCfg.MaxPages = int64(cfg.EngineMaxPages)
	a.engine = engine.NewPool(engineCfg, logger)

	override, err := strategy.ParseOverrideMode(cfg.HostOverride)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("invalid host override: %w", err)
	}

	registry, err := rendering.DefaultRegistry()
	if err != nil {
		a.Close()
		return nil, err
	}
	registry.SetLogger(logger)

	deps := pipeline.Deps{
		Fitter:       fitting.New(a.engine, opt, logger),
		Optimizer:    opt,
		Achievements: compressor,
		Registry:     registry,
		Agent:        a.engine,
		Logger:       logger,
		HostOverride: override,
	}

	if withStore && cfg.DatabaseURL != "" {
		db, err := store.Connect(ctx, cfg.DatabaseURL, store.DefaultOptions())
		if err != nil {
			a.Close()
			return nil, err
		}
		a.db = db
		if err := store.RunMigrations(ctx, db); err != nil {
			a.Close()
			return nil, err
		}
		deps.Store = store.NewPGStore(db)
		logger.Info("Generation log store connected")
	}

	a.service = pipeline.New(deps)
	return a, nil
}

// newLLMClient returns nil when no API key is configured; compression then
// falls back to deterministic rules.
func newLLMClient(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (llm.Client, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		logger.WithField("provider", cfg.LLMProvider).Warn("No API key configured, text generation disabled")
		return nil, nil
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(llm.ParseProvider(cfg.LLMProvider)), apiKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// Close releases the browser, the model client and the database.
func (a *app) Close() {
	if a.llm != nil {
		if err := a.llm.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close LLM client")
		}
	}
	if a.engine != nil {
		if err := a.engine.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close rendering engine")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close database")
		}
	}
}
