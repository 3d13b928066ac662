package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mohamed-2473/Store/internal/app"
	"github.com/mohamed-2473/Store/internal/config"
	apperrors "github.com/mohamed-2473/Store/pkg/errors"
	"github.com/mohamed-2473/Store/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// A local .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", slog.String("error", err.Error()))
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		return apperrors.ExitInvalidInput
	}

	// Initialize structured logger.
	log := logger.New("storefront", cfg.LogLevel)

	// Create a context that is cancelled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx = logger.WithCorrelationID(ctx, uuid.NewString())
	ctx = logger.NewContext(ctx, log)

	application, err := app.NewApp(ctx, cfg, log, os.Stdout, os.Stderr)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		return apperrors.ExitCode(err)
	}

	runErr := application.Run(ctx, args)
	if runErr != nil {
		logger.WithContext(ctx, logger.FromContext(ctx)).ErrorContext(ctx, "command failed", slog.String("error", runErr.Error()))
	}

	if err := application.Shutdown(); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	return apperrors.ExitCode(runErr)
}
