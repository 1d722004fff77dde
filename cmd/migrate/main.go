package main

import (
	"context"
	"log"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/migrate"
	"storefront/internal/observability"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.Named("migrate")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool, logger); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}
}
