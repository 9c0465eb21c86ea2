package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 婚姻状况常量
const (
	MaritalSingle   = "single"
	MaritalMarried  = "married"
	MaritalDivorced = "divorced"
	MaritalWidowed  = "widowed"
)

// User 用户模型
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID        int64              `bson:"user_id" json:"id"`                   // 业务用户 ID（唯一）
	FirstName     string             `bson:"first_name" json:"first_name"`        // 名字
	LastName      string             `bson:"last_name" json:"last_name"`          // 姓氏
	Birthday      time.Time          `bson:"birthday,omitempty" json:"birthday"`  // 生日
	MaritalStatus string             `bson:"marital_status" json:"marital_status"` // 婚姻状况
	CreatedAt     time.Time          `bson:"created_at" json:"-"`                 // 创建时间
}

// IsValidMaritalStatus 校验婚姻状况取值
func IsValidMaritalStatus(status string) bool {
	switch status {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}
