package model

import "time"

// Profile is the anonymous demographic block of a submission
type Profile struct {
	Facility  string `json:"facility" bson:"facility" validate:"required"`
	Job       string `json:"job" bson:"job" validate:"required"`
	Age       string `json:"age" bson:"age" validate:"required"`
	Seniority string `json:"seniority" bson:"seniority" validate:"required"`
	Comment   string `json:"comment,omitempty" bson:"comment,omitempty" validate:"max=2000"`
}

// SubmissionContext carries optional client metadata
type SubmissionContext struct {
	QuestionnaireVersion string `json:"questionnaireVersion,omitempty" bson:"questionnaireVersion,omitempty"`
	DurationSeconds      *int   `json:"durationSeconds,omitempty" bson:"durationSeconds,omitempty"`
	Locale               string `json:"locale,omitempty" bson:"locale,omitempty"`
	Department           string `json:"department,omitempty" bson:"department,omitempty"`
}

// SubmitRequest is the body of POST /v1/submissions
type SubmitRequest struct {
	Answers []Answer          `json:"answers" validate:"required,min=1,dive"`
	Consent bool              `json:"consent"`
	Profile Profile           `json:"profile"`
	Context SubmissionContext `json:"context"`
}

// Submission is the persisted record of a completed questionnaire
type Submission struct {
	ID         string            `json:"id" bson:"_id"`
	SessionID  string            `json:"sessionId" bson:"sessionId"`
	Pseudo     string            `json:"pseudo" bson:"pseudo"`
	Profile    Profile           `json:"profile" bson:"profile"`
	Context    SubmissionContext `json:"context" bson:"context"`
	Answers    []Answer          `json:"answers" bson:"answers"`
	Normalized []NormalizedScore `json:"normalized" bson:"normalized"`
	Scores     []DimensionScore  `json:"scores" bson:"scores"`
	Consented  bool              `json:"consented" bson:"consented"`
	CreatedAt  time.Time         `json:"createdAt" bson:"createdAt"`
}

// SubmitResponse is returned after a submission is scored
type SubmitResponse struct {
	SubmissionID string            `json:"submissionId,omitempty"`
	Scores       []ScoredDimension `json:"scores"`
	Persisted    bool              `json:"persisted"`
}

// SubmissionEvent is published once a submission has been scored and stored
type SubmissionEvent struct {
	Type         string           `json:"type"`
	SubmissionID string           `json:"submissionId"`
	Facility     string           `json:"facility"`
	Scores       []DimensionScore `json:"scores"`
	OccurredAt   time.Time        `json:"occurredAt"`
}
