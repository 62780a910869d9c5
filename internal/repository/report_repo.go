package repository

import (
	"context"
	"fmt"

	"wellbeing/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReportRepo handles MongoDB operations for AI reports
type MongoReportRepo struct {
	aiReports *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) *MongoReportRepo {
	return &MongoReportRepo{
		aiReports: db.Collection("ai_reports"),
	}
}

// EnsureIndexes makes submissionId unique so there is one report per submission
func (r *MongoReportRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.aiReports.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "submissionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("repository: ai_reports index: %w", err)
	}
	return nil
}

func (r *MongoReportRepo) SaveAIReport(ctx context.Context, report *model.AIReport) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.aiReports.ReplaceOne(ctx, bson.M{"submissionId": report.SubmissionID}, report, opts)
	return err
}

func (r *MongoReportRepo) GetAIReport(ctx context.Context, submissionID string) (*model.AIReport, error) {
	var report model.AIReport
	err := r.aiReports.FindOne(ctx, bson.M{"submissionId": submissionID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
