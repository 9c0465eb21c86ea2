package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 日志级别常量
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LogEntry 请求日志条目
// 各微服务通过 logs 服务集中写入；按配置的保留天数自动过期
type LogEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Service    string             `bson:"service" json:"service"`         // 来源服务名
	Level      string             `bson:"level" json:"level"`             // 日志级别
	Method     string             `bson:"method,omitempty" json:"method,omitempty"` // HTTP 方法
	Path       string             `bson:"path,omitempty" json:"path,omitempty"`     // 请求路径
	Status     int                `bson:"status,omitempty" json:"status,omitempty"` // 响应状态码
	DurationMS int64              `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"` // 处理耗时（毫秒）
	Message    string             `bson:"message" json:"message"`         // 日志内容
	LoggedAt   time.Time          `bson:"logged_at" json:"logged_at"`     // 记录时间
}

// IsValidLevel 校验日志级别取值
func IsValidLevel(level string) bool {
	switch level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}
