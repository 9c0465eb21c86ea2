package repository

import (
	"context"
	"fmt"
	"time"

	"cost_manager/internal/costs/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCostRepository 支出记录数据访问层（MongoDB 实现）
type MongoCostRepository struct {
	collection *mongo.Collection
}

// NewMongoCostRepository 创建支出记录 Repository
func NewMongoCostRepository(db *mongo.Database) CostRepository {
	return &MongoCostRepository{
		collection: db.Collection("costs"),
	}
}

// Create 创建支出记录
func (r *MongoCostRepository) Create(ctx context.Context, record *models.CostRecord) error {
	// 如果没有设置创建时间，使用当前时间
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to create cost record: %w", err)
	}

	return nil
}

// FindByUserAndRange 按用户与时间范围查询记录
// 范围为半开区间 [startInclusive, endExclusive)，按创建时间升序返回
func (r *MongoCostRepository) FindByUserAndRange(ctx context.Context, userID int64, startInclusive, endExclusive time.Time) ([]*models.CostRecord, error) {
	filter := bson.M{
		"user_id": userID,
		"created_at": bson.M{
			"$gte": startInclusive,
			"$lt":  endExclusive,
		},
	}

	// 按创建时间升序排序，保证报表内条目顺序稳定
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.CostRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode cost records: %w", err)
	}

	return records, nil
}

// SumByUser 汇总用户全部支出金额（Decimal128 聚合，无记录时返回 0）
func (r *MongoCostRepository) SumByUser(ctx context.Context, userID int64) (models.Money, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Money{}, fmt.Errorf("failed to sum cost records: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total models.Money `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return models.Money{}, fmt.Errorf("failed to decode cost sum: %w", err)
	}

	if len(results) == 0 {
		return models.Money{}, nil
	}
	return results[0].Total, nil
}

// EnsureIndexes 确保索引存在
func (r *MongoCostRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// 复合索引：user_id + created_at（支持按用户、时间范围查询）
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cost indexes: %w", err)
	}

	return nil
}
