package report

import (
	"errors"
	"time"
)

// maxAttempts is the initial call plus a single retry
const maxAttempts = 2

// RetryPolicy decides whether a failed attempt is tried again
type RetryPolicy struct {
	AttemptTimeout time.Duration
}

// NewRetryPolicy returns the policy for the given per-attempt timeout
func NewRetryPolicy(attemptTimeout time.Duration) RetryPolicy {
	return RetryPolicy{AttemptTimeout: attemptTimeout}
}

func (p RetryPolicy) MaxAttempts() int { return maxAttempts }

// WorstCase is the longest a generation can take
func (p RetryPolicy) WorstCase() time.Duration {
	return time.Duration(maxAttempts) * p.AttemptTimeout
}

// ShouldRetry reports whether attempt (1-based) failing with err gets another try
func (p RetryPolicy) ShouldRetry(attempt int, err error) bool {
	if attempt >= maxAttempts || err == nil {
		return false
	}
	var r retryable
	return errors.As(err, &r) && r.Retryable()
}

// State is a step of a single report generation
type State int

const (
	StateStart State = iota
	StateSending
	StateRetrying
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateSending:
		return "sending"
	case StateRetrying:
		return "retrying"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether no transition leaves s
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateFailed
}

var transitions = map[State][]State{
	StateStart:    {StateSending, StateFailed},
	StateSending:  {StateSuccess, StateRetrying, StateFailed},
	StateRetrying: {StateSending},
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
