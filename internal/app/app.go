package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salescli/internal/config"
	apperrors "salescli/internal/errors"
	"salescli/internal/infrastructure"
)

// ShutdownTimeout bounds the telemetry flush at the end of a run
const ShutdownTimeout = 5 * time.Second

// Application represents the runtime shared by one command run
type Application struct {
	Name      string
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
}

// NewApplication resolves and creates the directories, initializes logging
// and telemetry, and returns ctx tagged with a fresh run id.
func NewApplication(ctx context.Context, name string, cfg *config.Config) (context.Context, *Application, error) {
	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return ctx, nil, apperrors.NewConfigError("failed to resolve paths", err)
	}
	paths = paths.WithVisualizationsDir(cfg.Analyzer.VisualizationsDir)

	if err := paths.EnsureDirectories(); err != nil {
		return ctx, nil, apperrors.NewStorageError("failed to ensure directories", err)
	}

	if cfg.Logging.FilePath != "" {
		cfg.Logging.FilePath = paths.GetLogPath(cfg.Logging.FilePath)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return ctx, nil, apperrors.NewConfigError("failed to initialize logger", err)
	}
	logger = infrastructure.WithComponent(logger, name)

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Application starting",
		slog.String("command", name),
		slog.String("version", config.AppVersion))
	paths.LogPathResolution(logger)

	tel, err := infrastructure.InitializeTelemetry(ctx, cfg.Telemetry, paths, logger)
	if err != nil {
		return ctx, nil, apperrors.NewConfigError("failed to initialize telemetry", err)
	}

	return ctx, &Application{
		Name:      name,
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Telemetry: tel,
	}, nil
}

// RunStage runs fn inside a traced, timed pipeline stage
func (a *Application) RunStage(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
	ctx, end := a.Telemetry.StartStage(ctx, stage)
	err := fn(ctx)
	end(err)

	if err != nil {
		a.Logger.ErrorContext(ctx, "Stage failed",
			slog.String("stage", stage),
			slog.String("type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
	}
	return err
}

// Shutdown flushes telemetry and closes the log file. It runs even when ctx
// has been cancelled.
func (a *Application) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()

	err := a.Telemetry.Shutdown(ctx)
	if err != nil {
		a.Logger.ErrorContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	return errors.Join(err, infrastructure.CloseLogFile())
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
