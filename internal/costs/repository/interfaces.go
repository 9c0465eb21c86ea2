package repository

import (
	"context"
	"time"

	"cost_manager/internal/costs/models"
)

// CostRepository 支出记录数据访问接口
type CostRepository interface {
	// Create 创建支出记录
	Create(ctx context.Context, record *models.CostRecord) error

	// FindByUserAndRange 按用户与时间范围查询记录
	// 范围为半开区间 [startInclusive, endExclusive)
	FindByUserAndRange(ctx context.Context, userID int64, startInclusive, endExclusive time.Time) ([]*models.CostRecord, error)

	// SumByUser 汇总用户全部支出金额
	SumByUser(ctx context.Context, userID int64) (models.Money, error)

	// EnsureIndexes 确保索引存在
	EnsureIndexes(ctx context.Context) error
}

// ReportCacheRepository 报表缓存数据访问接口
type ReportCacheRepository interface {
	// Lookup 按键查询缓存报表，未命中返回 ErrReportNotCached
	Lookup(ctx context.Context, key models.ReportKey) (*models.Report, error)

	// Store 写入缓存报表，键已存在时返回 ErrReportAlreadyCached
	Store(ctx context.Context, key models.ReportKey, report *models.Report) error

	// EnsureIndexes 确保索引存在
	EnsureIndexes(ctx context.Context) error
}
