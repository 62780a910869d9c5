package handler

import (
	"fmt"
	"net/http"

	"wellbeing/internal/model"
	"wellbeing/internal/report"
	"wellbeing/internal/service"
	"wellbeing/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportSvc     *service.ReportService
	submissionSvc *service.SubmissionService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService, submissionSvc *service.SubmissionService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, submissionSvc: submissionSvc}
}

// resultEntry accepts both {label, value} and {dimension, score}
type resultEntry struct {
	Label     *string  `json:"label"`
	Dimension *string  `json:"dimension"`
	Value     *float64 `json:"value"`
	Score     *float64 `json:"score"`
}

// GenerateRequest is the body of POST /v1/report
type GenerateRequest struct {
	Locale  string        `json:"locale"`
	Results []resultEntry `json:"results"`
}

// GenerateResponse is the success body of POST /v1/report. Multidim repeats
// the synthesis for clients of the first API version.
type GenerateResponse struct {
	OK                bool                               `json:"ok"`
	GlobalSynthesis   string                             `json:"globalSynthesis"`
	Multidim          string                             `json:"multidim"`
	DimensionAnalyses map[string]model.DimensionAnalysis `json:"dimensionAnalyses"`
}

// ToReportRequest normalizes the loose payload into a report request
func (g GenerateRequest) ToReportRequest() (model.ReportRequest, error) {
	locale, err := report.ParseLocale(g.Locale)
	if err != nil {
		return model.ReportRequest{}, err
	}
	results := make([]model.ReportResult, 0, len(g.Results))
	for i, e := range g.Results {
		label := e.Label
		if label == nil {
			label = e.Dimension
		}
		value := e.Value
		if value == nil {
			value = e.Score
		}
		if label == nil || value == nil {
			return model.ReportRequest{}, &report.InvalidRequestError{
				Reason: fmt.Sprintf("result %d needs a dimension label and a numeric score", i),
			}
		}
		results = append(results, model.ReportResult{Label: *label, Value: *value})
	}
	req := model.ReportRequest{Locale: locale, Results: results}
	if err := report.ValidateRequest(req); err != nil {
		return model.ReportRequest{}, err
	}
	return req, nil
}

// Generate handles POST /v1/report
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	req, err := body.ToReportRequest()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp, err := h.reportSvc.Generate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		OK:                true,
		GlobalSynthesis:   resp.GlobalSynthesis,
		Multidim:          resp.GlobalSynthesis,
		DimensionAnalyses: resp.DimensionAnalyses,
	})
}

// GetAIReport handles GET /v1/submissions/{id}/report
func (h *ReportHandler) GetAIReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.authorize(w, r, id) {
		return
	}

	rep, err := h.reportSvc.GetAIReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rep == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "not_started"})
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// TriggerAIReport handles POST /v1/submissions/{id}/report
func (h *ReportHandler) TriggerAIReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.authorize(w, r, id) {
		return
	}

	rep, err := h.reportSvc.TriggerAIReport(r.Context(), id, model.Locale(r.URL.Query().Get("locale")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusAccepted
	if rep.Status == model.ReportReady {
		status = http.StatusOK
	}
	writeJSON(w, status, rep)
}

// authorize checks the submission belongs to the caller's session
func (h *ReportHandler) authorize(w http.ResponseWriter, r *http.Request, submissionID string) bool {
	return AuthorizeSubmission(w, r, h.submissionSvc, submissionID)
}

// AuthorizeSubmission writes an error and returns false unless the submission
// exists and was made under the session of the request's claims.
func AuthorizeSubmission(w http.ResponseWriter, r *http.Request, svc *service.SubmissionService, submissionID string) bool {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return false
	}
	sub, err := svc.Get(r.Context(), submissionID)
	if err != nil {
		writeServiceError(w, err)
		return false
	}
	if sub.SessionID != claims.SessionID {
		writeServiceError(w, service.ErrNotFound)
		return false
	}
	return true
}
