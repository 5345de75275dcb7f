package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	csvLoader "ott-insights-service/internal/dataset/adapters/csv"
	excelLoader "ott-insights-service/internal/dataset/adapters/excel"
	pgLoader "ott-insights-service/internal/dataset/adapters/postgres"
	datasetPorts "ott-insights-service/internal/dataset/core/ports"
	datasetUsecase "ott-insights-service/internal/dataset/core/usecase"

	insightsHttp "ott-insights-service/internal/insights/adapters/http/fiber"
	"ott-insights-service/internal/insights/core/funnel"
	insightsUsecase "ott-insights-service/internal/insights/core/usecase"

	"ott-insights-service/internal/config"
	"ott-insights-service/internal/logger"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "ott-insights-service/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.ServiceEnvironment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	if err := funnel.ValidateSteps(funnel.Steps()); err != nil {
		zl.Fatal("invalid funnel step configuration", zap.Error(err))
	}

	loader, cleanup, err := buildLoader(cfg)
	if err != nil {
		zl.Fatal("failed to build dataset loader", zap.Error(err))
	}
	defer cleanup()

	// One-time dataset load; any malformed event_time aborts startup.
	loadUC := datasetUsecase.NewLoadDatasetUseCase(loader)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	snapshot, err := loadUC.Execute(loadCtx)
	cancelLoad()
	if err != nil {
		zl.Fatal("dataset load failed", zap.Error(err))
	}

	zl.Info("dataset loaded",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.Int("rows", len(snapshot.Events)),
		zap.Int("columns", len(snapshot.Schema)),
	)

	refreshUC := insightsUsecase.NewRefreshDashboardUseCase(snapshot, cfg.DefaultTopN)

	app := fiber.New()

	handler := insightsHttp.NewInsightsHandler(refreshUC)
	app.Get("/insights/dashboard", handler.GetDashboard)
	app.Get("/insights/funnel-steps", handler.GetFunnelSteps)
	app.Get("/insights/columns", handler.GetColumns)
	app.Get("/healthz", handler.GetHealth)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			zl.Error("fiber stopped", zap.Error(err))
		}
	}()

	zl.Info("server started", zap.String("addr", cfg.HTTPAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	zl.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Error("fiber shutdown error", zap.Error(err))
	}

	zl.Info("server exiting")
}

func buildLoader(cfg *config.Config) (datasetPorts.LoaderPort, func(), error) {
	switch cfg.DatasetSource {
	case "excel":
		return excelLoader.NewLoader(cfg.DatasetPath, cfg.DatasetSheet), func() {}, nil
	case "csv":
		return csvLoader.NewLoader(cfg.DatasetPath), func() {}, nil
	case "postgres":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}

		return pgLoader.NewLoader(pgLoader.NewSQLDB(db), cfg.PostgresTable), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown DATASET_SOURCE: %q", cfg.DatasetSource)
	}
}
