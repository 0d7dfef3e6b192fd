package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"student-attendance-manager/internal/command"
	"student-attendance-manager/internal/config"
	"student-attendance-manager/internal/db"
	"student-attendance-manager/internal/messaging"
	"student-attendance-manager/internal/presence"
	"student-attendance-manager/internal/student"
	"student-attendance-manager/internal/telemetry"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

// Models are listed parents first so foreign keys resolve on creation.
var Models = []interface{}{
	(*student.Student)(nil),
	(*presence.Presence)(nil),
}

type App struct {
	config    *config.Config
	db        *bun.DB
	telemetry *telemetry.Telemetry
	publisher messaging.Publisher
	processor *command.Processor
	presences presence.Service
	logger    *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing application", "env", cfg.Env, "driver", cfg.Database.Driver)

	tel, err := telemetry.Init(ctx, cfg.Telemetry.Enabled, cfg.Telemetry.Endpoint, ServiceName, Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	database, err := db.New(cfg.Database)
	if err != nil {
		tel.Shutdown(ctx, logger)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := tel.Metrics.Database.RegisterDB(database.DB, otel.Meter(ServiceName)); err != nil {
		logger.Warn("failed to register database metrics", "error", err)
	}

	if err := db.RunMigrations(ctx, database, Models...); err != nil {
		db.Close(database)
		tel.Shutdown(ctx, logger)
		return nil, err
	}

	publisher := messaging.NewFromConfig(cfg.Messaging, tel.Metrics, logger)

	studentService := student.NewService(student.NewRepository(database, tel.Metrics), publisher, tel.Metrics, logger)
	presenceService := presence.NewService(presence.NewRepository(database, tel.Metrics), studentService, publisher, tel.Metrics, logger)

	registry := command.NewRegistry(studentService, presenceService)

	logger.Info("application initialized successfully")

	return &App{
		config:    cfg,
		db:        database,
		telemetry: tel,
		publisher: publisher,
		processor: command.NewProcessor(registry, tel.Metrics, logger),
		presences: presenceService,
		logger:    logger,
	}, nil
}

// RunFile processes the command file at path and writes the report to out.
func (a *App) RunFile(ctx context.Context, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	a.logger.Info("processing input", "path", path)
	return a.Run(ctx, f, out)
}

// Run clears stored records, executes every command in input and writes one
// report line per student to out.
func (a *App) Run(ctx context.Context, input io.Reader, out io.Writer) error {
	if err := db.Reset(ctx, a.db, Models...); err != nil {
		return err
	}

	stats, err := a.processor.Run(ctx, input)
	if err != nil {
		return err
	}
	a.logger.Info("input processed",
		"lines", stats.Lines,
		"executed", stats.Executed,
		"skipped", stats.Skipped,
		"ignored", stats.Ignored,
	)

	lines, err := a.presences.GenerateReport(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func (a *App) Close(ctx context.Context) error {
	a.logger.Info("shutting down")

	var errs []error
	if err := a.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}
	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
