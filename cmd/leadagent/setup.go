package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"leadagent/internal/app"
	"leadagent/internal/config"
	"leadagent/internal/util"
)

// buildContainer loads configuration, initializes logging, and assembles
// the service graph shared by all subcommands.
func buildContainer() (*app.Container, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	buildCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	container, err := app.Build(buildCtx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to assemble application services: %w", err)
	}

	return container, logger, nil
}
