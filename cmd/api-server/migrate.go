package main

import (
	"cocktailhub/database"

	"go.uber.org/zap"
)

type MigrateCmd struct{}

func (m *MigrateCmd) Run(cliCtx *Context) error {
	cfg, logger, err := bootstrap(cliCtx)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("migration failed", zap.Error(err))
		return err
	}
	return nil
}
