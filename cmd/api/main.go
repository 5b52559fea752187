package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/orderapi"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"go.uber.org/zap"
)

const serviceName = "storefront-cart"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(serviceName, cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//ストア（永続側→セッション側の順に読む）
	backends := []repo.NamedStore{
		{Name: "durable", Store: durableStore(cfg, log)},
		{Name: "ephemeral", Store: ephemeralStore(ctx, cfg, log)},
	}

	sessions := usecase.NewCartSessions(backends, log, usecase.CartSessionsConfig{
		IdleTTL:      cfg.SessionIdleTTL,
		WriteTimeout: cfg.StorageWriteTimeout,
	})

	if cfg.OrdersAPIURL == "" {
		log.Warn("ORDERS_API_URL is not set, checkout will fail")
	}
	orders := orderapi.NewClient(cfg.OrdersAPIURL, cfg.OrdersAPITimeout)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(sessions)
	checkoutUC := usecase.NewCheckoutUsecase(sessions, orders, validator.NewCheckoutValidator(), log)

	//Handler生成
	e := server.New(log, server.Handlers{
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
	}, middleware.SessionOptionsFromConfig(cfg))

	//Server起動
	if err := server.Start(ctx, e, cfg.Addr(), log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// Postgresに繋がらなければメモリで動かす
func durableStore(cfg config.Config, log *zap.Logger) repo.KeyValueStore {
	if !cfg.HasPostgres() {
		log.Warn("postgres is not configured, durable cart storage runs in memory")
		return infraRepo.NewKVMemoryStore()
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Warn("postgres connection failed, durable cart storage runs in memory", zap.Error(err))
		return infraRepo.NewKVMemoryStore()
	}
	if err := gormDB.AutoMigrate(&model.KVEntry{}); err != nil {
		log.Warn("postgres migration failed, durable cart storage runs in memory", zap.Error(err))
		return infraRepo.NewKVMemoryStore()
	}

	log.Info("postgres connected")
	return infraRepo.NewKVGormStore(gormDB)
}

// Redisに繋がらなければメモリで動かす
func ephemeralStore(ctx context.Context, cfg config.Config, log *zap.Logger) repo.KeyValueStore {
	if !cfg.HasRedis() {
		log.Warn("redis is not configured, ephemeral cart storage runs in memory")
		return infraRepo.NewKVMemoryStore()
	}

	client, err := db.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Warn("redis connection failed, ephemeral cart storage runs in memory", zap.Error(err))
		return infraRepo.NewKVMemoryStore()
	}

	log.Info("redis connected")
	return infraRepo.NewKVRedisStore(client, cfg.SessionTTL)
}
