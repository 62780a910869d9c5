package handler

import (
	"net/http"

	"wellbeing/internal/model"
	"wellbeing/internal/service"
)

// AuthHandler handles respondent session endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// StartSession handles POST /v1/sessions
func (h *AuthHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req model.StartSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.authSvc.StartSession(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}
