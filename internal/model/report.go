package model

import "time"

// Locale selects the language of the generated report
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
)

// ReportResult is one dimension entry sent to the LLM
type ReportResult struct {
	Label string  `json:"label" bson:"label"`
	Value float64 `json:"value" bson:"value"`
}

// ReportRequest is the data block of a report generation call
type ReportRequest struct {
	Locale  Locale         `json:"locale" bson:"locale"`
	Results []ReportResult `json:"results" bson:"results"`
}

// Labels returns the set of dimension labels in the request
func (r ReportRequest) Labels() map[string]struct{} {
	labels := make(map[string]struct{}, len(r.Results))
	for _, res := range r.Results {
		labels[res.Label] = struct{}{}
	}
	return labels
}

// DimensionAnalysis is the narrative pair the LLM returns per dimension
type DimensionAnalysis struct {
	Definition     string `json:"definition" bson:"definition" validate:"nonblank"`
	Interpretation string `json:"interpretation" bson:"interpretation" validate:"nonblank"`
}

// ReportResponse is the validated structured report
type ReportResponse struct {
	DimensionAnalyses map[string]DimensionAnalysis `json:"dimensionAnalyses" bson:"dimensionAnalyses" validate:"required"`
	GlobalSynthesis   string                       `json:"globalSynthesis" bson:"globalSynthesis" validate:"nonblank"`
}

// ReportStatus tracks asynchronous generation for a submission
type ReportStatus string

const (
	ReportPending ReportStatus = "pending"
	ReportReady   ReportStatus = "ready"
	ReportFailed  ReportStatus = "failed"
)

// AIReport is the stored outcome of a report generation for a submission
type AIReport struct {
	SubmissionID string          `json:"submissionId" bson:"submissionId"`
	Status       ReportStatus    `json:"status" bson:"status"`
	Locale       Locale          `json:"locale" bson:"locale"`
	Report       *ReportResponse `json:"report,omitempty" bson:"report,omitempty"`
	ErrorKind    string          `json:"errorKind,omitempty" bson:"errorKind,omitempty"`
	Error        string          `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
	ReadyAt      *time.Time      `json:"readyAt,omitempty" bson:"readyAt,omitempty"`
}
