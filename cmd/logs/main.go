package main

import (
	"context"
	"os/signal"
	"syscall"

	"cost_manager/internal/app"
	"cost_manager/internal/config"
	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"
	"cost_manager/internal/logs"
	logsrepo "cost_manager/internal/logs/repository"

	"github.com/joho/godotenv"
)

const serviceName = "logs"

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.S(serviceName).Fatalf("failed to load config: %v", err)
	}

	// logs 服务自身不上报，避免回环
	application, err := app.New(cfg, false)
	if err != nil {
		logger.S(serviceName).Fatalf("failed to init app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logRepo := logsrepo.NewMongoLogRepository(application.MongoDB.Database(), cfg.LogRetentionDays)
	if err := logRepo.EnsureIndexes(ctx); err != nil {
		logger.S(serviceName).Fatalf("failed to ensure log indexes: %v", err)
	}

	router := httpx.NewRouter(serviceName, cfg.CORSOrigins, application.Shipper)
	logs.NewServer(logRepo).Register(router)

	if err := httpx.Serve(ctx, serviceName, cfg.HTTP.LogsAddr, router, cfg.HTTPTimeout); err != nil {
		logger.S(serviceName).Errorf("server stopped with error: %v", err)
	}

	if err := application.Close(context.Background()); err != nil {
		logger.S(serviceName).Errorf("shutdown cleanup failed: %v", err)
	}
}
