package main

import (
	"context"
	"log"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/observability"
	"storefront/internal/seed"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.Named("seed")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, logger); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
	logger.Info("seed applied")
}
