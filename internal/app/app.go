// Package app is the composition root: it builds the driven adapters from
// settings and wires them into the core services.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/custodia-labs/lapak/internal/adapters/driven/ai"
	"github.com/custodia-labs/lapak/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lapak/internal/adapters/driven/storage/mongo"
	"github.com/custodia-labs/lapak/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lapak/internal/adapters/driven/vectorindex/chromem"
	"github.com/custodia-labs/lapak/internal/adapters/driving/web"
	"github.com/custodia-labs/lapak/internal/core/domain"
	"github.com/custodia-labs/lapak/internal/core/ports/driven"
	"github.com/custodia-labs/lapak/internal/core/services"
	"github.com/custodia-labs/lapak/internal/logger"
)

// Options select where state lives and which catalog is opened.
type Options struct {
	// Home is the lapak home directory. Empty resolves $LAPAK_HOME or ~/.lapak.
	Home string

	// Variant overrides catalog.variant from config.toml when set.
	Variant domain.Variant
}

// Config holds the file-backed settings stores.
type Config struct {
	Home     string
	Store    *file.ConfigStore
	Models   *file.ModelConfigStore
	Settings *services.SettingsService
}

// OpenConfig opens config.toml and model.json without touching the catalog.
func OpenConfig(opts Options) (*Config, error) {
	home := opts.Home
	if home == "" {
		var err error
		if home, err = file.HomeDir(); err != nil {
			return nil, err
		}
	}

	store, err := file.NewConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	models, err := file.NewModelConfigStore(home)
	if err != nil {
		return nil, fmt.Errorf("open model config: %w", err)
	}

	return &Config{
		Home:     home,
		Store:    store,
		Models:   models,
		Settings: services.NewSettingsService(store, models, ai.NewConfigValidator()),
	}, nil
}

// App holds the assistant's services and the resources behind them.
type App struct {
	Home      string
	Settings  *domain.AppSettings
	Config    *Config
	Catalog   *services.CatalogService
	Index     *services.IndexService
	Assistant *services.AssistantService
	Prompts   *file.PromptStore

	store   *sqlite.Store
	vectors *chromem.Index
	ai      *ai.Services
}

// Open builds the full assistant stack and seeds the catalog.
// Storage failures are fatal. AI misconfiguration is not: catalog commands
// still work and Ask reports the provider as unavailable.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg, err := OpenConfig(opts)
	if err != nil {
		return nil, err
	}

	settings, err := cfg.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if opts.Variant != "" {
		settings.Variant = opts.Variant
	}
	if !settings.Variant.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedVariant, settings.Variant)
	}

	logger.Section("Opening " + string(settings.Variant) + " catalog")
	store, err := sqlite.NewStore(filepath.Join(cfg.Home, "data"), settings.Variant)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	logger.Debug("Catalog database: %s", store.Path())

	a := &App{
		Home:     cfg.Home,
		Settings: settings,
		Config:   cfg,
		store:    store,
	}

	a.Catalog = services.NewCatalogService(store.CatalogStore(), settings.Variant)
	if err := a.Catalog.Initialize(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("initialize catalog: %w", err)
	}

	a.vectors, err = chromem.New(chromem.Config{
		Dir:        filepath.Join(cfg.Home, "vectors"),
		Collection: settings.Retrieval.Collection + "_" + string(settings.Variant),
		Compress:   true,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open vector index: %w", err)
	}

	a.Prompts, err = file.NewPromptStore(filepath.Join(cfg.Home, "prompts"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open prompts: %w", err)
	}

	var (
		embedder driven.EmbeddingService
		llm      driven.LLMService
	)
	if a.ai, err = ai.NewServices(settings); err != nil {
		logger.Warn("AI services unavailable: %v", err)
	} else {
		embedder, llm = a.ai.Embedding, a.ai.LLM
		logger.Debug("Embedding model: %s, chat model: %s", embedder.ModelName(), llm.ModelName())
	}

	a.Index = services.NewIndexService(a.Catalog, embedder, a.vectors)
	a.Assistant = services.NewAssistantService(settings.Variant, embedder, a.vectors, llm, a.Prompts, cfg.Models)
	a.Assistant.SetTopK(settings.Retrieval.TopK)

	return a, nil
}

// Handler returns the web router for the assistant.
func (a *App) Handler() http.Handler {
	return web.NewRouter(web.NewApp(a.Catalog, a.Assistant, a.Settings.Server.AskRate))
}

// Close releases every resource the app opened.
func (a *App) Close() error {
	var errs []error
	if a.ai != nil {
		a.ai.Close()
	}
	if a.vectors != nil {
		errs = append(errs, a.vectors.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}

// Sensor holds the sensor ingest service and its MongoDB connection.
type Sensor struct {
	Addr      string
	Telemetry *services.TelemetryService

	store *mongo.ReadingStore
}

// OpenSensor connects to MongoDB using the sensor settings.
func OpenSensor(ctx context.Context, opts Options) (*Sensor, error) {
	cfg, err := OpenConfig(opts)
	if err != nil {
		return nil, err
	}
	settings, err := cfg.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	store, err := mongo.NewReadingStore(ctx, mongo.Config{
		URI:        settings.Sensor.MongoURI,
		Database:   settings.Sensor.Database,
		Collection: settings.Sensor.Collection,
	})
	if err != nil {
		return nil, err
	}

	return &Sensor{
		Addr:      settings.Sensor.Addr,
		Telemetry: services.NewTelemetryService(store),
		store:     store,
	}, nil
}

// Handler returns the sensor ingest router.
func (s *Sensor) Handler() http.Handler {
	return web.NewSensorRouter(web.NewSensorApp(s.Telemetry))
}

// Close disconnects from MongoDB.
func (s *Sensor) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}
