// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	router "mobivoice/internal/api"
	"mobivoice/internal/api/handler"
	"mobivoice/internal/config"
	"mobivoice/internal/fallback"
	"mobivoice/internal/ledger"
	"mobivoice/internal/metrics"
	"mobivoice/internal/nlp"
	"mobivoice/internal/repository"
	boltstore "mobivoice/internal/repository/bolt"
	"mobivoice/internal/repository/memory"
	pgstore "mobivoice/internal/repository/postgres"
	"mobivoice/internal/service"
	"mobivoice/internal/speech"
	"mobivoice/internal/util"
	"mobivoice/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	Store   repository.SnapshotStore
	Ledger  *ledger.Ledger
	Metrics *metrics.Metrics

	// Optional collaborators; each may be absent without blocking the others.
	Transcriber speech.Transcriber
	Synthesizer speech.Synthesizer
	Recognizer  nlp.Recognizer

	AssistantService service.AssistantService

	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	store, err := app.newSnapshotStore()
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	app.Store = store
	app.Logger.Info("Snapshot store initialized.", "backend", cfg.StoreBackend)

	app.Ledger = ledger.New(ctx, app.Store, app.Logger)
	app.Metrics = metrics.New(cfg.MetricsNamespace)

	// Speech and entity recognition stay disabled unless a real engine is
	// wired in; the health surface reports each independently.
	app.Transcriber = speech.NullTranscriber{}
	app.Synthesizer = speech.NullSynthesizer{}
	app.Recognizer = nil

	responder := fallback.New(fallback.Config{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.OllamaModel,
		Timeout: cfg.FallbackTimeout,
	}, app.Logger)

	app.AssistantService = service.NewAssistantService(
		app.Ledger,
		responder,
		app.Recognizer,
		app.Metrics,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	if err := os.MkdirAll(cfg.AudioDir, 0o755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	assistantHandler := handler.NewAssistantHandler(
		app.AssistantService,
		app.Store,
		app.Transcriber,
		app.Synthesizer,
		app.Recognizer,
		cfg.AudioDir,
		app.Logger,
	)
	app.HTTPHandler = router.NewRouter(assistantHandler, app.Metrics, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// newSnapshotStore builds the snapshot store selected by configuration.
func (app *Application) newSnapshotStore() (repository.SnapshotStore, error) {
	switch app.Config.StoreBackend {
	case "postgres":
		database, err := db.NewPostgresDB(app.Config.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return pgstore.New(database)
	case "memory":
		return memory.New(), nil
	default:
		if dir := filepath.Dir(app.Config.DataFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		return boltstore.New(app.Config.DataFile)
	}
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Logger.Error("Failed to close snapshot store", "error", err)
			return fmt.Errorf("failed to close snapshot store: %w", err)
		}
		app.Logger.Info("Snapshot store closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
