package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 应用程序配置
type Config struct {
	MongoURI         string        // MongoDB连接URI
	MongoDBName      string        // MongoDB数据库名称
	LogRetentionDays int           // 请求日志保留天数（过期自动删除）
	LogsServiceURL   string        // logs 服务地址（跨服务日志上报）
	CORSOrigins      []string      // 允许的跨域来源
	HTTPTimeout      time.Duration // HTTP 服务读写超时
	HTTP             HTTPConfig
}

// HTTPConfig 各微服务监听地址
type HTTPConfig struct {
	UsersAddr string // users 服务
	CostsAddr string // costs 服务
	LogsAddr  string // logs 服务
	AdminAddr string // admin 服务
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "cost_manager"
	}

	cfg := &Config{
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDBName: mongoDBName,
		HTTP: HTTPConfig{
			UsersAddr: getAddr("USERS_ADDR", ":8080"),
			CostsAddr: getAddr("COSTS_ADDR", ":8081"),
			LogsAddr:  getAddr("LOGS_ADDR", ":8082"),
			AdminAddr: getAddr("ADMIN_ADDR", ":8083"),
		},
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}

	cfg.LogsServiceURL = strings.TrimSpace(os.Getenv("LOGS_SERVICE_URL"))
	if cfg.LogsServiceURL == "" {
		cfg.LogsServiceURL = "http://localhost:8082"
	}

	// 解析LOG_RETENTION_DAYS（默认30天）
	retentionDaysStr := os.Getenv("LOG_RETENTION_DAYS")
	if retentionDaysStr == "" {
		cfg.LogRetentionDays = 30
	} else {
		days, err := strconv.Atoi(retentionDaysStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse LOG_RETENTION_DAYS: %w", err)
		}
		if days < 1 {
			return nil, fmt.Errorf("LOG_RETENTION_DAYS must be >= 1, got %d", days)
		}
		cfg.LogRetentionDays = days
	}

	// 解析CORS_ALLOWED_ORIGINS（逗号分隔，默认所有来源）
	cfg.CORSOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// 解析HTTP_TIMEOUT_SECONDS（默认15秒）
	if timeoutStr := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT_SECONDS")); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS: %s", timeoutStr)
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	} else {
		cfg.HTTPTimeout = 15 * time.Second
	}

	return cfg, nil
}

// getAddr 读取监听地址环境变量，为空时返回默认值
func getAddr(key, fallback string) string {
	addr := strings.TrimSpace(os.Getenv(key))
	if addr == "" {
		return fallback
	}
	// 允许只配置端口号，如 "8080"
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

// parseOrigins 解析逗号分隔的来源列表
// 支持格式: "http://a.com" 或 "http://a.com,http://b.com"
func parseOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{"*"}
	}

	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		origins = append(origins, part)
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
