package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	cacheport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
	saldoUseCase "github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/saldo"
	topupUseCase "github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/topup"
	transferUseCase "github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/transfer"
	withdrawUseCase "github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/withdraw"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/telemetry"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil && !errors.Is(err, config.ErrNoDotEnv) {
		log.Printf("Warning: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.NewZapLogger(logger.Options{
		Production: cfg.Logger.Production,
		Level:      cfg.Logger.Level,
		Service:    cfg.Telemetry.ServiceName,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("Service stopped with error", map[string]any{"error": err.Error()})
		_ = appLogger.Flush()
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger coreport.Logger) error {
	ctx := context.Background()
	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(cfg.Database, appLogger, tp)
	if err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			appLogger.Warn("Failed to close database", map[string]any{"error": err.Error()})
		}
	}()

	if err := dbManager.AutoMigrate(ctx); err != nil {
		return err
	}

	store, redisClient, err := newCacheStore(ctx, cfg, appLogger, tp)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := telemetry.NewPrometheusMetrics(registry, cfg.Telemetry.Namespace)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	tracerProvider := telemetry.NewTracerProvider(cfg.Telemetry, appLogger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("Failed to flush tracer provider", map[string]any{"error": err.Error()})
		}
	}()
	tracer := telemetry.NewTracer(tracerProvider.Tracer(cfg.Telemetry.ServiceName))

	env := observe.NewEnvelope(metrics, tracer, appLogger, tp)

	db := dbManager.DB()
	userRepo := repository.NewUserRepository(db, appLogger)
	saldoRepo := repository.NewSaldoRepository(db, appLogger)
	topupRepo := repository.NewTopupRepository(db, appLogger)
	transferRepo := repository.NewTransferRepository(db, appLogger)
	withdrawRepo := repository.NewWithdrawRepository(db, appLogger)

	uow := dbManager.UnitOfWork()

	// Every service shares one locker so a balance has a single lock per process.
	locker := ledger.NewKeyedLocker(appLogger)
	policy := cfg.Policy()

	saldos := saldoUseCase.NewUseCase(uow, saldoRepo, userRepo, store, locker, env, policy, tp, appLogger)
	topups := topupUseCase.NewUseCase(saldos, topupRepo, userRepo, store, locker, env, policy, tp, appLogger)
	transfers := transferUseCase.NewUseCase(saldos, transferRepo, userRepo, store, locker, env, policy, tp, appLogger)
	withdraws := withdrawUseCase.NewUseCase(saldos, withdrawRepo, userRepo, store, locker, env, policy, tp, appLogger)

	if err := handler.RegisterValidators(tp); err != nil {
		return err
	}

	checks := map[string]handler.Pinger{"database": dbManager}
	if redisClient != nil {
		checks["cache"] = cache.NewRedisStore(redisClient, appLogger)
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, routes.Handlers{
		Saldo:    handler.NewSaldoHandler(saldos, appLogger, policy.Floor),
		Topup:    handler.NewTopupHandler(topups, appLogger),
		Transfer: handler.NewTransferHandler(transfers, appLogger, policy.TransferMinimum),
		Withdraw: handler.NewWithdrawHandler(withdraws, appLogger, policy.WithdrawMinimum),
		Health:   handler.NewHealthHandler(checks),
	}, registry)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":  server.Addr,
			"env":   cfg.Environment,
			"cache": cfg.Cache.Driver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		appLogger.Info("Shutting down server...", map[string]any{"signal": sig.String()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
	return nil
}

// newCacheStore builds the configured cache. The returned client is nil for the memory driver.
func newCacheStore(
	ctx context.Context,
	cfg *config.Config,
	appLogger coreport.Logger,
	tp coreport.TimeProvider,
) (cacheport.Store, *redis.Client, error) {
	if cfg.Cache.Driver == config.CacheMemory {
		appLogger.Info("Using in-process cache", nil)
		return cache.NewMemoryStore(tp, appLogger), nil, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	appLogger.Info("Connected to redis", map[string]any{"addr": cfg.Redis.Addr})
	return cache.NewRedisStore(client, appLogger), client, nil
}
