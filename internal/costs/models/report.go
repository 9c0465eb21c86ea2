package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportKey 唯一标识一个用户的一个报表周期
type ReportKey struct {
	UserID int64
	Year   int
	Month  int // 1-12
}

// CostEntry 报表中的单条支出
type CostEntry struct {
	Sum         Money  `bson:"sum" json:"sum"`                 // 金额
	Description string `bson:"description" json:"description"` // 描述
	Day         int    `bson:"day" json:"day"`                 // 所在月份的第几天
}

// CategoryCosts 一个类别桶及其支出列表
// JSON 中序列化为单键对象 {"food":[...]}，顺序由 Report.Costs 保证
type CategoryCosts struct {
	Category string      `bson:"category"`
	Entries  []CostEntry `bson:"entries"`
}

// MarshalJSON 输出 {"<category>":[entries...]} 形式
// 空桶输出 []，而非 null
func (c CategoryCosts) MarshalJSON() ([]byte, error) {
	entries := c.Entries
	if entries == nil {
		entries = []CostEntry{}
	}
	return json.Marshal(map[string][]CostEntry{c.Category: entries})
}

// UnmarshalJSON 解析单键对象形式的类别桶
func (c *CategoryCosts) UnmarshalJSON(data []byte) error {
	var raw map[string][]CostEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("category bucket must have exactly one key, got %d", len(raw))
	}
	for category, entries := range raw {
		c.Category = category
		c.Entries = entries
	}
	if c.Entries == nil {
		c.Entries = []CostEntry{}
	}
	return nil
}

// Report 月度分组报表
// Costs 恒为五个类别桶，顺序固定为 ReportCategories，空桶不省略
type Report struct {
	UserID int64           `bson:"user_id" json:"userid"`
	Year   int             `bson:"year" json:"year"`
	Month  int             `bson:"month" json:"month"`
	Costs  []CategoryCosts `bson:"costs" json:"costs"`
}

// CachedReport 已固化的报表缓存文档
// (user_id, year, month) 上有唯一索引；写入后永不更新或失效
type CachedReport struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     int64              `bson:"user_id"`
	Year       int                `bson:"year"`
	Month      int                `bson:"month"`
	Report     Report             `bson:"report"`
	ComputedAt time.Time          `bson:"computed_at"` // 报表计算完成时间
}
