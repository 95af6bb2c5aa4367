package main

import (
	"fmt"

	"cocktailhub/internal/config"
	"cocktailhub/internal/logging"

	"go.uber.org/zap"
)

// bootstrap loads and validates the configuration and builds the logger.
func bootstrap(cliCtx *Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}

	level, format := cfg.LogLevel, cfg.LogFormat
	if cliCtx.Debug {
		level, format = "debug", "text"
	}

	logger, err := logging.New(level, format)
	if err != nil {
		return nil, nil, fmt.Errorf("could not build logger: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return nil, nil, err
	}

	return cfg, logger, nil
}
