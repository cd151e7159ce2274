package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/workoutplanner/internal/app"
	"github.com/briangreenhill/workoutplanner/internal/config"
	"github.com/briangreenhill/workoutplanner/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty}).
		With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init app")
	}
	if err := a.RunWorker(ctx); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}
