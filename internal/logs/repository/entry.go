package repository

import (
	"context"
	"fmt"
	"time"

	"cost_manager/internal/logs/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLogRepository 请求日志数据访问层（MongoDB 实现）
type MongoLogRepository struct {
	collection    *mongo.Collection
	retentionDays int
}

// NewMongoLogRepository 创建日志 Repository
// retentionDays 决定 TTL 索引的过期时间，须 >= 1
func NewMongoLogRepository(db *mongo.Database, retentionDays int) LogRepository {
	return &MongoLogRepository{
		collection:    db.Collection("request_logs"),
		retentionDays: retentionDays,
	}
}

// Create 写入日志条目
func (r *MongoLogRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}
	if entry.Level == "" {
		entry.Level = models.LevelInfo
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}

	return nil
}

// FindByRange 按时间范围查询日志，半开区间 [from, to)，按时间升序返回
func (r *MongoLogRepository) FindByRange(ctx context.Context, from, to time.Time) ([]*models.LogEntry, error) {
	filter := bson.M{
		"logged_at": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "logged_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.LogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode log entries: %w", err)
	}

	return entries, nil
}

// EnsureIndexes 确保索引存在
func (r *MongoLogRepository) EnsureIndexes(ctx context.Context) error {
	retention := r.retentionDays
	if retention < 1 {
		retention = 1
	}

	indexes := []mongo.IndexModel{
		// TTL 索引：超过保留天数的日志自动删除
		{
			Keys:    bson.D{{Key: "logged_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(retention * 24 * 3600)),
		},
		// 复合索引：service + logged_at（支持按服务、时间查询）
		{
			Keys: bson.D{
				{Key: "service", Value: 1},
				{Key: "logged_at", Value: 1},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create log indexes: %w", err)
	}

	return nil
}
