package repository

import (
	"context"

	"cost_manager/internal/users/models"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// Create 创建用户，user_id 已存在时返回 ErrUserExists
	Create(ctx context.Context, user *models.User) error

	// GetByUserID 根据业务用户 ID 获取用户，不存在时返回 ErrUserNotFound
	GetByUserID(ctx context.Context, userID int64) (*models.User, error)

	// EnsureIndexes 确保索引存在
	EnsureIndexes(ctx context.Context) error
}
