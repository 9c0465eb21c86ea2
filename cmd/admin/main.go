package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cost_manager/internal/admin"
	"cost_manager/internal/app"
	"cost_manager/internal/config"
	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"

	"github.com/joho/godotenv"
)

const serviceName = "admin"

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

	router := httpx.NewRouter(serviceName, cfg.CORSOrigins, application.Shipper)
	admin.NewServer(application.MongoDB, os.Getenv("APP_VERSION")).Register(router)

	if err := httpx.Serve(ctx, serviceName, cfg.HTTP.AdminAddr, router, cfg.HTTPTimeout); err != nil {
		logger.S(serviceName).Errorf("server stopped with error: %v", err)
	}

	if err := application.Close(context.Background()); err != nil {
		logger.S(serviceName).Errorf("shutdown cleanup failed: %v", err)
	}
}
