package main

import (
	"context"
	"os"

	"NewsEnricher/internal/app"
	"NewsEnricher/internal/config"
	"NewsEnricher/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application := app.New(ctx, cfg, logger)
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
