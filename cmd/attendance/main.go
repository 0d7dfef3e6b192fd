package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student-attendance-manager/internal/app"
	"student-attendance-manager/internal/config"
	"student-attendance-manager/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	slogLogger := logger.NewWithServiceContext(app.ServiceName, app.Version, cfg.Env)
	slog.SetDefault(slogLogger)

	if len(os.Args) > 1 {
		cfg.Input.Path = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, slogLogger)
	if err != nil {
		slogLogger.Error("failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Close(shutdownCtx); err != nil {
			slogLogger.Error("shutdown failed", "error", err)
		}
	}()

	if err := application.RunFile(ctx, cfg.Input.Path, os.Stdout); err != nil {
		slogLogger.Error("run failed", "error", err)
		return 1
	}
	return 0
}
