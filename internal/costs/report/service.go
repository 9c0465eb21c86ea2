package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cost_manager/internal/costs/models"
	"cost_manager/internal/costs/repository"
	"cost_manager/internal/logger"
)

// ErrInvalidInput 请求参数非法
// 在任何存储访问之前返回
var ErrInvalidInput = errors.New("invalid input")

// Service 月度报表服务
// 已结束周期（严格早于当前年月）的报表首次计算后永久缓存；
// 此后即使该周期又写入了新的支出记录，也继续返回已缓存的结果。
// 当前及未来月份视为未结束，每次请求都重新计算，永不缓存。
// 周期判定固定使用 UTC 时钟。
type Service struct {
	costs   repository.CostRepository
	cache   repository.ReportCacheRepository
	nowFunc func() time.Time
}

// NewService 创建报表服务
func NewService(costs repository.CostRepository, cache repository.ReportCacheRepository) *Service {
	return &Service{
		costs: costs,
		cache: cache,
		nowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// GetReport 获取指定用户某年某月的分组报表
// 任一存储访问失败都会使整个请求失败，不返回部分结果，也不在服务内重试
func (s *Service) GetReport(ctx context.Context, userID int64, year, month int) (*models.Report, error) {
	// 参数校验先于任何 I/O
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive, got %d", ErrInvalidInput, userID)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive, got %d", ErrInvalidInput, year)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be in [1,12], got %d", ErrInvalidInput, month)
	}

	key := models.ReportKey{UserID: userID, Year: year, Month: month}
	closed := s.periodClosed(year, month)

	// 已结束周期先查缓存，命中则直接返回，不再扫描支出记录
	if closed {
		cached, err := s.cache.Lookup(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repository.ErrReportNotCached) {
			return nil, err
		}
	}

	// 半开区间 [月初, 下月初)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	records, err := s.costs.FindByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	built := Build(userID, year, month, records)

	// 已结束周期回填缓存；唯一索引冲突说明并发请求已写入，保留既有缓存
	if closed {
		if err := s.cache.Store(ctx, key, built); err != nil {
			if errors.Is(err, repository.ErrReportAlreadyCached) {
				logger.L().Debugf("report already cached for user %d period %d-%02d, keeping existing copy", userID, year, month)
			} else {
				return nil, err
			}
		}
	}

	return built, nil
}

// periodClosed 判断 (year, month) 是否严格早于当前年月
// 当前月份即使在最后一天也视为未结束
func (s *Service) periodClosed(year, month int) bool {
	now := s.nowFunc()
	if year != now.Year() {
		return year < now.Year()
	}
	return time.Month(month) < now.Month()
}
