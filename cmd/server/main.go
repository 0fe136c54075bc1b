package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/salestracker/salestracker-server/config"
	dashboardH "github.com/salestracker/salestracker-server/internal/dashboard/handler"
	dashboardUC "github.com/salestracker/salestracker-server/internal/dashboard/usecase"
	"github.com/salestracker/salestracker-server/internal/demo"
	"github.com/salestracker/salestracker-server/internal/flags"
	itemH "github.com/salestracker/salestracker-server/internal/item/handler"
	itemUC "github.com/salestracker/salestracker-server/internal/item/usecase"
	"github.com/salestracker/salestracker-server/internal/model"
	orderH "github.com/salestracker/salestracker-server/internal/order/handler"
	orderUC "github.com/salestracker/salestracker-server/internal/order/usecase"
	"github.com/salestracker/salestracker-server/internal/scheduler"
	"github.com/salestracker/salestracker-server/internal/server/router"
	"github.com/salestracker/salestracker-server/internal/store"
	"github.com/salestracker/salestracker-server/pkg/logger"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.Must(logger.New(cfg.Logger.Level, cfg.Logger.Encoding))
	defer func() { _ = appLogger.Sync() }()
	zap.ReplaceGlobals(appLogger)

	ctx := context.Background()

	// 3. Select the record-store backend
	var (
		itemStore  store.RecordStore[*model.Item]
		orderStore store.RecordStore[*model.Order]
	)
	switch cfg.Store.Backend {
	case "postgres":
		db, err := store.NewPostgres(&store.PostgresConfig{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("could not connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := store.Migrate(ctx, db); err != nil {
			appLogger.Fatal("could not run migrations", zap.Error(err))
		}
		appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

		itemStore = store.NewPGItemStore(db)
		orderStore = store.NewPGOrderStore(db)
	default:
		appLogger.Info("using in-memory record store")
		itemStore = store.NewMemoryStore[*model.Item]((*model.Item).Clone)
		orderStore = store.NewMemoryStore[*model.Order]((*model.Order).Clone)
	}

	// 4. Select the flag-store backend
	var flagStore flags.Store
	switch cfg.Store.FlagBackend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLogger.Fatal("could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		flagStore = flags.NewRedisStore(redisClient)
	default:
		flagStore = flags.NewMemoryStore()
	}

	// 5. Initialize UseCases
	itemUc := itemUC.NewItemUseCase(itemStore, logger.Named(appLogger, "uc.item"))
	orderUc := orderUC.NewOrderUseCase(orderStore, itemStore, logger.Named(appLogger, "uc.order"))
	dashUc := dashboardUC.NewDashboardUseCase(orderStore, itemStore, logger.Named(appLogger, "uc.dashboard"))

	// 6. Seed demo data if enabled
	if cfg.Demo.Enabled {
		seeder := demo.NewSeeder(itemUc, orderUc, flagStore, logger.Named(appLogger, "demo"))
		if err := seeder.SeedIfNeeded(ctx); err != nil {
			appLogger.Fatal("demo data seeding failed", zap.Error(err))
		}
	}

	// 7. Initialize Handlers and Router
	itemHandler := itemH.NewItemHandler(itemUc, logger.Named(appLogger, "handler.item"))
	orderHandler := orderH.NewOrderHandler(orderUc, logger.Named(appLogger, "handler.order"))
	dashHandler := dashboardH.NewDashboardHandler(dashUc, logger.Named(appLogger, "handler.dashboard"))

	engine := router.New(itemHandler, orderHandler, dashHandler, logger.Named(appLogger, "http"), cfg.Server.AppEnv)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	}).Handler(engine)

	// 8. Start the inventory report scheduler
	var sched *scheduler.Scheduler
	if cfg.Report.Enabled {
		sched = scheduler.NewScheduler(dashUc, cfg.Report.Schedule, cfg.Report.LowStockThreshold, logger.Named(appLogger, "scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	// 9. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:              port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
