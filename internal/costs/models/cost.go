package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 支出类别常量（固定枚举）
const (
	CategoryFood      = "food"      // 餐饮
	CategoryHealth    = "health"    // 医疗
	CategoryHousing   = "housing"   // 住房
	CategorySports    = "sports"    // 运动
	CategoryEducation = "education" // 教育
)

// ReportCategories 报表中类别的固定展示顺序
// 该顺序是对外接口契约的一部分，不可变更
var ReportCategories = []string{
	CategoryFood,
	CategoryEducation,
	CategoryHealth,
	CategoryHousing,
	CategorySports,
}

// IsValidCategory 校验类别是否属于固定枚举
func IsValidCategory(category string) bool {
	switch category {
	case CategoryFood, CategoryHealth, CategoryHousing, CategorySports, CategoryEducation:
		return true
	}
	return false
}

// CostRecord 单笔支出记录
// 创建后不可修改，不提供更新/删除路径
type CostRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID      int64              `bson:"user_id" json:"userid"`          // 所属用户 ID
	Description string             `bson:"description" json:"description"` // 支出描述
	Category    string             `bson:"category" json:"category"`       // 类别（固定枚举之一）
	Amount      Money              `bson:"amount" json:"sum"`              // 金额（Decimal128）
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`   // 创建时间（不允许早于写入时刻）
}
