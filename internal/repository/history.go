package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/campuskit/frontdesk/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const comparisonsCollection = "comparison_history"

// ComparisonRecord is one cached comparison row. The backend remains
// authoritative for all comparison data; this collection only lets the
// workspace re-open past comparisons across restarts and is purged when the
// underlying submission or report is deleted.
type ComparisonRecord struct {
	Assignment1ID    int64     `bson:"assignment1_id" json:"assignment1_id"`
	Assignment2ID    int64     `bson:"assignment2_id" json:"assignment2_id"`
	Assignment1Title string    `bson:"assignment1_title,omitempty" json:"assignment1_title,omitempty"`
	Assignment2Title string    `bson:"assignment2_title,omitempty" json:"assignment2_title,omitempty"`
	SimilarityScore  float64   `bson:"similarity_score" json:"similarity_score"`
	ReportURL        string    `bson:"report_url,omitempty" json:"report_url,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

type HistoryRepository struct {
	mongoRepo *MongoRepository
}

func NewHistoryRepository(mongoRepo *MongoRepository) *HistoryRepository {
	return &HistoryRepository{
		mongoRepo: mongoRepo,
	}
}

// RecordComparison caches the rows of one finished comparison run.
func (r *HistoryRepository) RecordComparison(ctx context.Context, results []models.ComparisonResult) error {
	for i := range results {
		record := &ComparisonRecord{
			Assignment1ID:    results[i].Assignment1ID,
			Assignment2ID:    results[i].Assignment2ID,
			Assignment1Title: results[i].Assignment1Title,
			Assignment2Title: results[i].Assignment2Title,
			SimilarityScore:  results[i].ResolvedScore(),
			ReportURL:        results[i].ReportURL,
			CreatedAt:        time.Now(),
		}
		if err := r.mongoRepo.InsertOne(ctx, comparisonsCollection, record); err != nil {
			return fmt.Errorf("failed to insert comparison record: %w", err)
		}
	}
	return nil
}

// ListComparisons returns cached comparisons, newest first.
func (r *HistoryRepository) ListComparisons(ctx context.Context, limit int64) ([]*ComparisonRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.mongoRepo.FindMany(ctx, comparisonsCollection, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comparison records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*ComparisonRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode comparison records: %w", err)
	}
	return records, nil
}

// LatestForPair returns the newest cached record for an assignment pair, or
// (nil, nil) when the pair has never been compared.
func (r *HistoryRepository) LatestForPair(ctx context.Context, id1, id2 int64) (*ComparisonRecord, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"assignment1_id": id1, "assignment2_id": id2},
			{"assignment1_id": id2, "assignment2_id": id1},
		},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var record ComparisonRecord
	err := r.mongoRepo.FindOne(ctx, comparisonsCollection, filter, opts).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comparison record: %w", err)
	}
	return &record, nil
}

// PurgeReport drops cached rows referencing a deleted report URL.
func (r *HistoryRepository) PurgeReport(ctx context.Context, reportURL string) (int64, error) {
	deleted, err := r.mongoRepo.DeleteMany(ctx, comparisonsCollection, bson.M{"report_url": reportURL})
	if err != nil {
		return 0, fmt.Errorf("failed to purge comparison records: %w", err)
	}
	return deleted, nil
}
