package model

import "github.com/golang-jwt/jwt/v5"

// RespondentClaims are JWT claims for a questionnaire session
type RespondentClaims struct {
	SessionID string `json:"sessionId"`
	Pseudo    string `json:"pseudo"`
	jwt.RegisteredClaims
}

// StartSessionRequest is the request body for opening a session
type StartSessionRequest struct {
	Pseudo string `json:"pseudo" validate:"required,min=2,max=32,pseudo"`
}

// StartSessionResponse is returned after a session is opened
type StartSessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
}
