package report

import (
	"cost_manager/internal/costs/models"
)

// Build 由原始支出记录构建月度分组报表（纯函数，无 I/O）
// records 须已按用户与周期过滤。条目在各自类别桶内保持输入相对顺序，
// 不按日期或金额排序。类别不在固定枚举内的记录被跳过，不产生错误。
// 输出恒为五个类别桶，顺序固定，空桶不省略。
func Build(userID int64, year, month int, records []*models.CostRecord) *models.Report {
	buckets := make(map[string][]models.CostEntry, len(models.ReportCategories))
	for _, category := range models.ReportCategories {
		buckets[category] = []models.CostEntry{}
	}

	for _, record := range records {
		entries, ok := buckets[record.Category]
		if !ok {
			// 写入时已有类别校验，这里只做兜底跳过
			continue
		}
		buckets[record.Category] = append(entries, models.CostEntry{
			Sum:         record.Amount,
			Description: record.Description,
			Day:         record.CreatedAt.Day(),
		})
	}

	costs := make([]models.CategoryCosts, 0, len(models.ReportCategories))
	for _, category := range models.ReportCategories {
		costs = append(costs, models.CategoryCosts{
			Category: category,
			Entries:  buckets[category],
		})
	}

	return &models.Report{
		UserID: userID,
		Year:   year,
		Month:  month,
		Costs:  costs,
	}
}
