package handler

import (
	"net/http"

	"wellbeing/internal/model"
	"wellbeing/internal/service"
	"wellbeing/internal/transport/rest/middleware"
)

// SubmissionHandler handles catalog, scoring, submission and draft endpoints
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// CatalogResponse is the public view of the question catalog
type CatalogResponse struct {
	Version    string           `json:"version"`
	Dimensions []string         `json:"dimensions"`
	Questions  []model.Question `json:"questions"`
}

// Catalog handles GET /v1/catalog
func (h *SubmissionHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	cat := h.submissionSvc.Catalog()
	writeJSON(w, http.StatusOK, CatalogResponse{
		Version:    cat.Version(),
		Dimensions: cat.Dimensions(),
		Questions:  cat.Questions(),
	})
}

// ScoreRequest is the body of POST /v1/scores
type ScoreRequest struct {
	Answers []model.Answer `json:"answers"`
}

// Score handles POST /v1/scores
func (h *SubmissionHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scores, err := h.submissionSvc.Score(req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "scores": scores})
}

// Submit handles POST /v1/submissions
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.submissionSvc.Submit(r.Context(), middleware.GetClaims(r.Context()), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if resp.Persisted {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// SaveDraft handles PUT /v1/sessions/me/draft
func (h *SubmissionHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var draft model.Draft
	if !decodeBody(w, r, &draft) {
		return
	}

	saved, err := h.submissionSvc.SaveDraft(r.Context(), claims.SessionID, draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// GetDraft handles GET /v1/sessions/me/draft
func (h *SubmissionHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	draft, err := h.submissionSvc.GetDraft(r.Context(), claims.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

// DeleteDraft handles DELETE /v1/sessions/me/draft
func (h *SubmissionHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	if err := h.submissionSvc.DeleteDraft(r.Context(), claims.SessionID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
