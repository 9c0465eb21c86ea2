package main

import (
	"context"
	"os/signal"
	"syscall"

	"cost_manager/internal/app"
	"cost_manager/internal/config"
	"cost_manager/internal/costs"
	costsrepo "cost_manager/internal/costs/repository"
	"cost_manager/internal/costs/report"
	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"

	"github.com/joho/godotenv"
)

const serviceName = "costs"

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.S(serviceName).Fatalf("failed to load config: %v", err)
	}

	application, err := app.New(cfg, true)
	if err != nil {
		logger.S(serviceName).Fatalf("failed to init app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := application.MongoDB.Database()
	costRepo := costsrepo.NewMongoCostRepository(db)
	cacheRepo := costsrepo.NewMongoReportCacheRepository(db)

	if err := costRepo.EnsureIndexes(ctx); err != nil {
		logger.S(serviceName).Fatalf("failed to ensure cost indexes: %v", err)
	}
	if err := cacheRepo.EnsureIndexes(ctx); err != nil {
		logger.S(serviceName).Fatalf("failed to ensure report cache indexes: %v", err)
	}

	router := httpx.NewRouter(serviceName, cfg.CORSOrigins, application.Shipper)
	costs.NewServer(costRepo, report.NewService(costRepo, cacheRepo)).Register(router)

	if err := httpx.Serve(ctx, serviceName, cfg.HTTP.CostsAddr, router, cfg.HTTPTimeout); err != nil {
		logger.S(serviceName).Errorf("server stopped with error: %v", err)
	}

	if err := application.Close(context.Background()); err != nil {
		logger.S(serviceName).Errorf("shutdown cleanup failed: %v", err)
	}
}
