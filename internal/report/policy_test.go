package report

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	p := NewRetryPolicy(15 * time.Second)
	assert.Equal(t, 2, p.MaxAttempts())
	assert.Equal(t, 30*time.Second, p.WorstCase())

	assert.True(t, p.ShouldRetry(1, &TimeoutError{Attempts: 1}))
	assert.True(t, p.ShouldRetry(1, &TransportError{StatusCode: 503}))
	assert.True(t, p.ShouldRetry(1, fmt.Errorf("wrapped: %w", &TransportError{Err: errors.New("reset")})))
	assert.False(t, p.ShouldRetry(2, &TimeoutError{Attempts: 2}))
	assert.False(t, p.ShouldRetry(1, &UpstreamError{StatusCode: 400}))
	assert.False(t, p.ShouldRetry(1, &MalformedResponseError{Reason: "x"}))
	assert.False(t, p.ShouldRetry(1, &ContractViolationError{}))
	assert.False(t, p.ShouldRetry(1, errors.New("plain")))
	assert.False(t, p.ShouldRetry(1, nil))
}

func TestTransitions(t *testing.T) {
	assert.True(t, CanTransition(StateStart, StateSending))
	assert.True(t, CanTransition(StateSending, StateRetrying))
	assert.True(t, CanTransition(StateRetrying, StateSending))
	assert.False(t, CanTransition(StateRetrying, StateSuccess))
	assert.False(t, CanTransition(StateSuccess, StateSending))
	assert.False(t, CanTransition(StateFailed, StateRetrying))
	assert.True(t, StateFailed.Terminal())
	assert.Equal(t, "retrying", StateRetrying.String())
}
