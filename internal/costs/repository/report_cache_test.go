package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cost_manager/internal/costs/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func sampleReport() *models.Report {
	sum, _ := models.MoneyFromString("12.5")
	return &models.Report{
		UserID: 123123,
		Year:   2025,
		Month:  3,
		Costs: []models.CategoryCosts{
			{Category: models.CategoryFood, Entries: []models.CostEntry{{Sum: sum, Description: "groceries", Day: 5}}},
			{Category: models.CategoryEducation, Entries: []models.CostEntry{}},
			{Category: models.CategoryHealth, Entries: []models.CostEntry{}},
			{Category: models.CategoryHousing, Entries: []models.CostEntry{}},
			{Category: models.CategorySports, Entries: []models.CostEntry{}},
		},
	}
}

func TestMongoReportCacheRepositoryLookup(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("hit", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}

		sum, _ := primitive.ParseDecimal128("12.5")
		cachedDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: int64(123123)},
			{Key: "year", Value: int32(2025)},
			{Key: "month", Value: int32(3)},
			{Key: "report", Value: bson.D{
				{Key: "user_id", Value: int64(123123)},
				{Key: "year", Value: int32(2025)},
				{Key: "month", Value: int32(3)},
				{Key: "costs", Value: bson.A{
					bson.D{
						{Key: "category", Value: models.CategoryFood},
						{Key: "entries", Value: bson.A{
							bson.D{
								{Key: "sum", Value: sum},
								{Key: "description", Value: "groceries"},
								{Key: "day", Value: int32(5)},
							},
						}},
					},
					bson.D{{Key: "category", Value: models.CategoryEducation}, {Key: "entries", Value: bson.A{}}},
					bson.D{{Key: "category", Value: models.CategoryHealth}, {Key: "entries", Value: bson.A{}}},
					bson.D{{Key: "category", Value: models.CategoryHousing}, {Key: "entries", Value: bson.A{}}},
					bson.D{{Key: "category", Value: models.CategorySports}, {Key: "entries", Value: bson.A{}}},
				}},
			}},
			{Key: "computed_at", Value: time.Now().UTC()},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, cacheNamespace(mt), mtest.FirstBatch, cachedDoc))

		key := models.ReportKey{UserID: 123123, Year: 2025, Month: 3}
		report, err := repo.Lookup(context.Background(), key)
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		if report.UserID != 123123 || report.Year != 2025 || report.Month != 3 {
			t.Fatalf("unexpected report header: %+v", report)
		}
		if len(report.Costs) != 5 {
			t.Fatalf("expected 5 category buckets, got %d", len(report.Costs))
		}
		if report.Costs[0].Category != models.CategoryFood || len(report.Costs[0].Entries) != 1 {
			t.Fatalf("unexpected food bucket: %+v", report.Costs[0])
		}
		if report.Costs[0].Entries[0].Day != 5 {
			t.Fatalf("unexpected entry day: %d", report.Costs[0].Entries[0].Day)
		}
	})

	mt.Run("miss", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, cacheNamespace(mt), mtest.FirstBatch))

		key := models.ReportKey{UserID: 404, Year: 2025, Month: 1}
		_, err := repo.Lookup(context.Background(), key)
		if !errors.Is(err, ErrReportNotCached) {
			t.Fatalf("expected ErrReportNotCached, got %v", err)
		}
	})

	mt.Run("query error", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "mock find failure",
		}))

		key := models.ReportKey{UserID: 1, Year: 2025, Month: 1}
		_, err := repo.Lookup(context.Background(), key)
		if err == nil || errors.Is(err, ErrReportNotCached) {
			t.Fatalf("expected storage error, got %v", err)
		}
		if !strings.Contains(err.Error(), "failed to lookup cached report") {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMongoReportCacheRepositoryStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		key := models.ReportKey{UserID: 123123, Year: 2025, Month: 3}
		if err := repo.Store(context.Background(), key, sampleReport()); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	})

	mt.Run("duplicate key maps to ErrReportAlreadyCached", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		key := models.ReportKey{UserID: 123123, Year: 2025, Month: 3}
		err := repo.Store(context.Background(), key, sampleReport())
		if !errors.Is(err, ErrReportAlreadyCached) {
			t.Fatalf("expected ErrReportAlreadyCached, got %v", err)
		}
	})

	mt.Run("insert error", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Name:    "WriteError",
			Message: "mock insert failure",
		}))

		key := models.ReportKey{UserID: 123123, Year: 2025, Month: 3}
		err := repo.Store(context.Background(), key, sampleReport())
		if err == nil || errors.Is(err, ErrReportAlreadyCached) {
			t.Fatalf("expected storage error, got %v", err)
		}
	})
}

func TestMongoReportCacheRepositoryEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := repo.EnsureIndexes(context.Background()); err != nil {
			t.Fatalf("EnsureIndexes failed: %v", err)
		}
	})

	mt.Run("error", func(mt *mtest.T) {
		repo := &MongoReportCacheRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "mock index failure",
		}))

		if err := repo.EnsureIndexes(context.Background()); err == nil {
			t.Fatalf("expected error but got nil")
		}
	})
}

func cacheNamespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}
