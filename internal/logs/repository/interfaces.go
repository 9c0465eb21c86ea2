package repository

import (
	"context"
	"time"

	"cost_manager/internal/logs/models"
)

// LogRepository 请求日志数据访问接口
type LogRepository interface {
	// Create 写入日志条目
	Create(ctx context.Context, entry *models.LogEntry) error

	// FindByRange 按时间范围查询日志
	// 范围为半开区间 [from, to)
	FindByRange(ctx context.Context, from, to time.Time) ([]*models.LogEntry, error)

	// EnsureIndexes 确保索引存在（含 TTL 过期索引）
	EnsureIndexes(ctx context.Context) error
}
