package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"wellbeing/internal/report"
	"wellbeing/internal/scoring"
	"wellbeing/internal/service"
)

const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	OK         bool     `json:"ok"`
	Error      string   `json:"error"`
	Kind       string   `json:"kind"`
	QuestionID string   `json:"questionId,omitempty"`
	Fields     []string `json:"fields,omitempty"`
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorBody{Error: message, Kind: kind})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}

type questionError interface {
	error
	Kind() string
	Question() string
}

// writeServiceError maps domain errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	status, body := classify(err)
	writeJSON(w, status, body)
}

func classify(err error) (int, ErrorBody) {
	var (
		qe  questionError
		ve  *service.ValidationError
		cfg *report.ConfigurationError
		ire *report.InvalidRequestError
		te  *report.TimeoutError
		tre *report.TransportError
		ue  *report.UpstreamError
		me  *report.MalformedResponseError
		cve *report.ContractViolationError
		sce *scoring.InvalidScaleError
	)
	switch {
	case errors.As(err, &sce):
		return http.StatusInternalServerError, ErrorBody{Error: "question catalog is inconsistent", Kind: sce.Kind()}
	case errors.As(err, &qe):
		return http.StatusUnprocessableEntity, ErrorBody{Error: qe.Error(), Kind: qe.Kind(), QuestionID: qe.Question()}
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorBody{Error: "invalid payload", Kind: ve.Kind(), Fields: ve.Fields}
	case errors.Is(err, service.ErrConsentRequired):
		return http.StatusUnprocessableEntity, ErrorBody{Error: err.Error(), Kind: "consent_required"}
	case errors.Is(err, service.ErrNothingAnswered):
		return http.StatusUnprocessableEntity, ErrorBody{Error: err.Error(), Kind: "nothing_answered"}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "not found", Kind: "not_found"}
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusNotImplemented, ErrorBody{Error: err.Error(), Kind: "storage_disabled"}
	case errors.As(err, &ire):
		return http.StatusBadRequest, ErrorBody{Error: ire.Error(), Kind: ire.Kind()}
	case errors.As(err, &cfg):
		return http.StatusInternalServerError, ErrorBody{Error: "report generation is not configured", Kind: cfg.Kind()}
	case errors.As(err, &te):
		return http.StatusServiceUnavailable, ErrorBody{Error: "report service temporarily unavailable", Kind: te.Kind()}
	case errors.As(err, &tre):
		return http.StatusServiceUnavailable, ErrorBody{Error: "report service temporarily unavailable", Kind: tre.Kind()}
	case errors.As(err, &ue):
		return http.StatusBadGateway, ErrorBody{Error: "report service rejected the request", Kind: ue.Kind()}
	case errors.As(err, &me):
		return http.StatusBadGateway, ErrorBody{Error: "report service returned an unreadable answer", Kind: me.Kind()}
	case errors.As(err, &cve):
		return http.StatusBadGateway, ErrorBody{Error: "report service returned an incomplete answer", Kind: cve.Kind()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorBody{Error: "request cancelled", Kind: "cancelled"}
	}
	return http.StatusInternalServerError, ErrorBody{Error: "internal error", Kind: "internal"}
}
