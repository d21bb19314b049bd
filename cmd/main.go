package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/app"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/config"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/gateway"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/handler"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/postgres"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/repo"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/service"
	"github.com/SergeyBogomolovv/order-orchestrator/internal/telemetry"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/cache"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/keylock"
	"github.com/SergeyBogomolovv/order-orchestrator/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title           Order Orchestrator API
// @version         1.0
// @description     Документация HTTP API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	shutdownTracer, err := telemetry.SetupTracer(conf.Tracing.ServiceName, conf.Env, conf.Tracing.Endpoint)
	panicIfErr("failed to setup tracer", err)

	db, err := postgres.New(context.Background(), conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	var rdb *redis.Client
	if conf.Gateways.ShippingMock && conf.Gateways.ShipmentStore == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer rdb.Close()
		panicIfErr("failed to connect to redis", rdb.Ping(context.Background()).Err())
		logger.Info("redis connected")
	}

	gateways, err := gateway.New(logger, conf, rdb)
	panicIfErr("failed to build gateways", err)

	orderRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	cache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	orderService := service.NewOrderService(logger, service.OrderDeps{
		TxManager: txManager,
		Repo:      orderRepo,
		Cache:     cache,
		Locks:     keylock.New[int64](),
		Inventory: gateways.Inventory,
		Payment:   gateways.Payment,
		Shipping:  gateways.Shipping,
		Notifier:  gateways.Notifier,
	})
	historyService := service.NewHistoryService(logger, orderRepo, gateways.Shipping, conf.History.PageSize)

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	httpHandler := handler.NewHTTPHandler(logger, orderService, historyService)
	handler.RegisterMetrics()

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(cache, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())

	if err := gateways.Close(); err != nil {
		logger.Error("failed to close gateways", slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("failed to shutdown tracer", slog.Any("error", err))
	}
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(telemetry.NewContextHandler(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	default:
		return slog.New(telemetry.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
