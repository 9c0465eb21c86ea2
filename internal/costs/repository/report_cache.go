package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cost_manager/internal/costs/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrReportNotCached 缓存未命中
	ErrReportNotCached = errors.New("report not cached")

	// ErrReportAlreadyCached 同一报表周期已存在缓存（唯一索引冲突）
	ErrReportAlreadyCached = errors.New("report already cached")
)

// MongoReportCacheRepository 报表缓存数据访问层（MongoDB 实现）
// 缓存文档只增不改：写入后既不更新也不失效
type MongoReportCacheRepository struct {
	collection *mongo.Collection
}

// NewMongoReportCacheRepository 创建报表缓存 Repository
func NewMongoReportCacheRepository(db *mongo.Database) ReportCacheRepository {
	return &MongoReportCacheRepository{
		collection: db.Collection("report_cache"),
	}
}

// Lookup 按键查询缓存报表，未命中返回 ErrReportNotCached
func (r *MongoReportCacheRepository) Lookup(ctx context.Context, key models.ReportKey) (*models.Report, error) {
	filter := bson.M{
		"user_id": key.UserID,
		"year":    key.Year,
		"month":   key.Month,
	}

	var cached models.CachedReport
	err := r.collection.FindOne(ctx, filter).Decode(&cached)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReportNotCached
		}
		return nil, fmt.Errorf("failed to lookup cached report: %w", err)
	}

	return &cached.Report, nil
}

// Store 写入缓存报表
// 唯一索引冲突映射为 ErrReportAlreadyCached，由调用方决定是否忽略
func (r *MongoReportCacheRepository) Store(ctx context.Context, key models.ReportKey, report *models.Report) error {
	cached := models.CachedReport{
		UserID:     key.UserID,
		Year:       key.Year,
		Month:      key.Month,
		Report:     *report,
		ComputedAt: time.Now().UTC(),
	}

	_, err := r.collection.InsertOne(ctx, cached)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrReportAlreadyCached
		}
		return fmt.Errorf("failed to store cached report: %w", err)
	}

	return nil
}

// EnsureIndexes 确保索引存在
func (r *MongoReportCacheRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// 唯一复合索引：user_id + year + month（每个报表周期至多一份缓存）
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create report cache indexes: %w", err)
	}

	return nil
}
