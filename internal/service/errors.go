package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrConsentRequired = errors.New("consent is required to submit the questionnaire")
	ErrNothingAnswered = errors.New("at least one question must be answered")
	ErrNotFound        = errors.New("not found")
	ErrStorageDisabled = errors.New("storage is disabled on this deployment")
)

// ValidationError lists the payload fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid payload: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Kind() string { return "invalid_payload" }
