package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/events"
	"storefront/internal/httpserver"
	"storefront/internal/observability"
	catalogrepo "storefront/internal/repository/catalog"
	checkoutrepo "storefront/internal/repository/checkout"
	orderrepo "storefront/internal/repository/order"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	productsvc "storefront/internal/service/product"
	"storefront/internal/session"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	sessions, closeSessions, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init session store", zap.Error(err))
	}
	defer closeSessions()

	publisher := newPublisher(cfg, logger)
	defer publisher.Close()

	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(catalogRepo)
	cartService := cartsvc.New(sessions, catalogRepo, logger.Named("cart"))
	checkoutService := checkoutsvc.New(checkoutsvc.Deps{
		Sessions: sessions,
		Store:    checkoutrepo.NewPostgres(dbpool, logger),
		Events:   publisher,
		Logger:   logger.Named("checkout"),
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger.Named("http"), dbpool, httpserver.Deps{
		ProductSvc:  productService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		Orders:      orderRepo,
	}, httpserver.Options{
		CookieSecure:       cfg.CookieSecure,
		SessionTTL:         cfg.SessionTTL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

func newSessionStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case session.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Info("session backend: redis", zap.String("addr", cfg.RedisAddr))
		return session.NewRedisStore(client, cfg.SessionTTL, logger), func() { client.Close() }, nil
	case session.BackendCookie:
		store, err := session.NewCookieStore(cfg.SessionSecret, cfg.SessionTTL, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("session backend: cookie")
		return store, func() {}, nil
	default:
		return nil, nil, errors.New("unknown SESSION_BACKEND " + cfg.SessionBackend)
	}
}

func newPublisher(cfg config.Config, logger *zap.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("order events disabled: KAFKA_BROKERS not set")
		return events.Nop{}
	}
	logger.Info("order events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaOrdersTopic))
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic, logger)
}
