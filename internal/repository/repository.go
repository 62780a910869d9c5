// Package repository persists scored submissions and generated reports.
// Getters return (nil, nil) when nothing is stored under the key.
package repository

import (
	"context"

	"wellbeing/internal/model"
)

// SubmissionRepo stores completed questionnaires
type SubmissionRepo interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
}

// ReportRepo stores the AI report generated for a submission
type ReportRepo interface {
	SaveAIReport(ctx context.Context, report *model.AIReport) error
	GetAIReport(ctx context.Context, submissionID string) (*model.AIReport, error)
}

// Store bundles both repositories of one storage backend
type Store struct {
	Submissions SubmissionRepo
	Reports     ReportRepo
	Close       func(ctx context.Context) error
}
