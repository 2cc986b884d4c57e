package repository

import (
	"context"

	"sipebaru-backend/app/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportResult adalah struktur hasil agregasi statistik komplain.
type ReportResult struct {
	TotalReported        int64            `json:"totalReported"`
	ReportedByPeriod     map[string]int64 `json:"reportedByPeriod"` // key: "YYYY-MM"
	ReportedByDepartment map[string]int64 `json:"reportedByDepartment"`
	AvgCompletionHours   float64          `json:"avgCompletionHours"`
}

// ReportRepository menangani query statistik dashboard ke MongoDB.
// Agregasi jalan di atas complaint_events: event pending = komplain masuk,
// event completed membawa reportedAt sehingga durasi penyelesaian bisa
// dihitung tanpa join ke Postgres.
type ReportRepository interface {
	GetStatistics(ctx context.Context) (*ReportResult, error)
}

type reportRepository struct {
	mongo *mongo.Database
}

func NewReportRepository(mongoDB *mongo.Database) ReportRepository {
	return &reportRepository{mongo: mongoDB}
}

func (r *reportRepository) GetStatistics(ctx context.Context) (*ReportResult, error) {
	coll := r.mongo.Collection("complaint_events")

	// Event pending persis satu per komplain (ditulis saat submit).
	reportedMatch := bson.M{"status": model.ComplaintPending}

	result := &ReportResult{
		ReportedByPeriod:     make(map[string]int64),
		ReportedByDepartment: make(map[string]int64),
	}

	// =========================
	// 1) Total komplain masuk
	// =========================
	total, err := coll.CountDocuments(ctx, reportedMatch)
	if err != nil {
		return nil, err
	}
	result.TotalReported = total

	// =========================
	// 2) Komplain masuk per periode (YYYY-MM dari reportedAt)
	// =========================
	periodPipeline := mongo.Pipeline{
		{{Key: "$match", Value: reportedMatch}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"$dateToString": bson.M{
					"format": "%Y-%m",
					"date":   "$reportedAt",
				},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err := coll.Aggregate(ctx, periodPipeline)
	if err != nil {
		return nil, err
	}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.ID == "" {
			row.ID = "unknown"
		}
		result.ReportedByPeriod[row.ID] = row.Count
	}
	_ = cur.Close(ctx)

	// =========================
	// 3) Komplain masuk per departemen
	// =========================
	deptPipeline := mongo.Pipeline{
		{{Key: "$match", Value: reportedMatch}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$department",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err = coll.Aggregate(ctx, deptPipeline)
	if err != nil {
		return nil, err
	}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.ID == "" {
			row.ID = "unknown"
		}
		result.ReportedByDepartment[row.ID] = row.Count
	}
	_ = cur.Close(ctx)

	// =========================
	// 4) Rata-rata lama penyelesaian (jam) dari event completed
	// =========================
	avgPipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": model.ComplaintCompleted}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avgMillis": bson.M{"$avg": bson.M{
				"$subtract": bson.A{"$createdAt", "$reportedAt"},
			}},
		}}},
	}
	cur, err = coll.Aggregate(ctx, avgPipeline)
	if err != nil {
		return nil, err
	}
	for cur.Next(ctx) {
		var row struct {
			AvgMillis float64 `bson:"avgMillis"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		result.AvgCompletionHours = row.AvgMillis / 1000 / 3600
	}
	_ = cur.Close(ctx)

	return result, nil
}
