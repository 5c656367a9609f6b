package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/xvierd/prodvana-cli/internal/adapters/clock"
	"github.com/xvierd/prodvana-cli/internal/adapters/git"
	"github.com/xvierd/prodvana-cli/internal/adapters/notification"
	"github.com/xvierd/prodvana-cli/internal/adapters/storage"
	"github.com/xvierd/prodvana-cli/internal/config"
	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/logging"
	"github.com/xvierd/prodvana-cli/internal/ports"
	"github.com/xvierd/prodvana-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	logger   *log.Logger
	storage  ports.Storage
	clock    ports.Clock
	notifier *notification.Notifier
	git      ports.GitDetector
	tasks    *services.TaskService
	wallets  *services.WalletService
	sessions *services.SessionService
	reports  *services.ReportService
	svc      *services.AppService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	// A previous run in the same process (tests) may have left resources open.
	_ = cleanupServices()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app.config = cfg

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	app.logger = logging.New(logging.Options{Level: level})

	path := cfg.Storage.Path
	if dbPath != "" {
		path = dbPath
	}
	if path != "" && path != storage.MemoryPath {
		if err := os.MkdirAll(getDir(path), 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	app.storage, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	workingDir, _ := os.Getwd()
	app.clock = clock.New()
	app.notifier = notification.New(&cfg.Notifications)
	app.git = git.NewDetector(workingDir)

	app.tasks = services.NewTaskService(app.storage, app.logger)
	app.wallets = services.NewWalletService(app.storage, domain.DefaultCatalog(), app.logger)
	app.sessions = services.NewSessionService(services.SessionDeps{
		Storage:  app.storage,
		Wallets:  app.wallets,
		Clock:    app.clock,
		Feedback: app.notifier,
		Git:      app.git,
		Presets:  cfg.Session.Presets,
		Logger:   app.logger,
	})
	app.reports = services.NewReportService(app.storage, app.tasks, app.clock)
	app.svc = services.NewAppService(app.tasks, app.wallets, app.sessions, app.reports, app.clock, services.AppOptions{
		StartingCoins: cfg.Profile.StartingCoins,
		TrialDuration: cfg.TrialDuration(),
		DefaultGame:   cfg.Game(),
	}, app.logger)

	if profile != "" {
		if err := app.svc.Resume(ctx, profile); err != nil {
			return fmt.Errorf("invalid --profile: %w", err)
		}
	}

	return nil
}

// loadConfig reads --config, or the default location. A broken default
// config falls back to the built-in defaults; a broken explicit one is an error.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

// cleanupServices ends any live session and closes the database.
func cleanupServices() error {
	if app.sessions != nil {
		app.sessions.End(context.Background())
	}
	var err error
	if app.storage != nil {
		err = app.storage.Close()
	}
	app = appDeps{}
	return err
}

// setupSignalHandler returns a context that cancels on interrupt signals.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// getDir returns the directory portion of a path.
func getDir(path string) string {
	return filepath.Dir(path)
}
