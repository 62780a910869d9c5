package report

import (
	"fmt"
	"strings"
	"time"
)

// Error kinds reported to callers
const (
	KindConfiguration     = "configuration"
	KindInvalidRequest    = "invalid_request"
	KindTimeout           = "timeout"
	KindTransport         = "transport"
	KindUpstream          = "upstream_rejected"
	KindMalformedResponse = "malformed_response"
	KindContractViolation = "contract_violation"
)

type retryable interface {
	Retryable() bool
}

// ConfigurationError means the deployment is missing what the call needs.
// It is detected before any outbound request.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string   { return "report: configuration: " + e.Reason }
func (e *ConfigurationError) Kind() string    { return KindConfiguration }
func (e *ConfigurationError) Retryable() bool { return false }

// InvalidRequestError means the report request itself cannot be sent
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string   { return "report: invalid request: " + e.Reason }
func (e *InvalidRequestError) Kind() string    { return KindInvalidRequest }
func (e *InvalidRequestError) Retryable() bool { return false }

// TimeoutError means an attempt exceeded its deadline
type TimeoutError struct {
	Attempts int
	After    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("report: LLM call timed out after %s (attempt %d)", e.After, e.Attempts)
}
func (e *TimeoutError) Kind() string    { return KindTimeout }
func (e *TimeoutError) Retryable() bool { return true }

// TransportError is a network failure or a 5xx answer from the LLM endpoint
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("report: LLM endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("report: LLM transport: %v", e.Err)
}
func (e *TransportError) Unwrap() error   { return e.Err }
func (e *TransportError) Kind() string    { return KindTransport }
func (e *TransportError) Retryable() bool { return true }

// UpstreamError is a non-retryable 4xx answer from the LLM endpoint
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("report: LLM endpoint rejected the request with status %d", e.StatusCode)
}
func (e *UpstreamError) Kind() string    { return KindUpstream }
func (e *UpstreamError) Retryable() bool { return false }

// MalformedResponseError means the payload could not be parsed as JSON
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("report: malformed LLM response: %s: %v", e.Reason, e.Err)
	}
	return "report: malformed LLM response: " + e.Reason
}
func (e *MalformedResponseError) Unwrap() error   { return e.Err }
func (e *MalformedResponseError) Kind() string    { return KindMalformedResponse }
func (e *MalformedResponseError) Retryable() bool { return false }

// ContractViolationError means the parsed payload does not match ReportResponse
type ContractViolationError struct {
	Violations []string
}

func (e *ContractViolationError) Error() string {
	return "report: LLM response violates contract: " + strings.Join(e.Violations, "; ")
}
func (e *ContractViolationError) Kind() string    { return KindContractViolation }
func (e *ContractViolationError) Retryable() bool { return false }
