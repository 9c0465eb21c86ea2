package main

import (
	"context"
	"os/signal"
	"syscall"

	"cost_manager/internal/app"
	"cost_manager/internal/config"
	costsrepo "cost_manager/internal/costs/repository"
	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"
	"cost_manager/internal/users"
	usersrepo "cost_manager/internal/users/repository"

	"github.com/joho/godotenv"
)

const serviceName = "users"

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
	userRepo := usersrepo.NewMongoUserRepository(db)
	costRepo := costsrepo.NewMongoCostRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logger.S(serviceName).Fatalf("failed to ensure user indexes: %v", err)
	}

	router := httpx.NewRouter(serviceName, cfg.CORSOrigins, application.Shipper)
	users.NewServer(userRepo, costRepo).Register(router)

	if err := httpx.Serve(ctx, serviceName, cfg.HTTP.UsersAddr, router, cfg.HTTPTimeout); err != nil {
		logger.S(serviceName).Errorf("server stopped with error: %v", err)
	}

	if err := application.Close(context.Background()); err != nil {
		logger.S(serviceName).Errorf("shutdown cleanup failed: %v", err)
	}
}
