package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"foccacia/internal/app"
	"foccacia/internal/config"
	"foccacia/internal/infrastructure/repository/elastic"
	"foccacia/internal/platform/logging"
)

// indexinit creates the document store indices with their mappings. Running it
// against a store that already has them is a no-op.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	platformLogger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = platformLogger.Sync() }()

	client := app.NewElasticClient(cfg, platformLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := elastic.EnsureIndices(ctx, client); err != nil {
		logger.Error("ensure indices failed", "url", cfg.ElasticURL, "error", err)
		os.Exit(1)
	}

	logger.Info("indices ready", "url", cfg.ElasticURL)
}
