package app

import (
	"context"
	"fmt"

	"cost_manager/internal/config"
	"cost_manager/internal/httpx"
	"cost_manager/internal/logger"
	"cost_manager/internal/mongo"
)

// App 单个微服务的基础设施容器
// 负责管理下层资源的生命周期（初始化、关闭）
type App struct {
	Config  *config.Config
	MongoDB *mongo.Client
	Shipper httpx.Shipper

	ownedShipper *httpx.HTTPShipper
}

// New 初始化基础设施
// shipLogs 为 false 时（logs 服务自身）不启动日志上报器，避免回环
func New(cfg *config.Config, shipLogs bool) (*App, error) {
	app := &App{Config: cfg}

	// 初始化 MongoDB
	mongoClient, err := mongo.InitFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init MongoDB failed: %w", err)
	}
	app.MongoDB = mongoClient
	logger.L().Info("MongoDB initialized successfully")

	if shipLogs {
		shipper := httpx.NewHTTPShipper(cfg.LogsServiceURL, 2, 256)
		app.Shipper = shipper
		app.ownedShipper = shipper
	} else {
		app.Shipper = httpx.NoopShipper{}
	}

	return app, nil
}

// Close 优雅关闭所有资源
// 应该在服务退出时调用，确保日志队列排空、连接正确释放
func (a *App) Close(ctx context.Context) error {
	if a.ownedShipper != nil {
		a.ownedShipper.Close()
	}
	if a.MongoDB != nil {
		if err := a.MongoDB.Close(ctx); err != nil {
			return fmt.Errorf("close MongoDB failed: %w", err)
		}
	}
	return nil
}
