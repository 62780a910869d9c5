// Package report turns dimension scores into a narrative report produced by
// an LLM, with a bounded retry and a strict response contract.
package report

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"wellbeing/internal/config"
	"wellbeing/internal/metrics"
	"wellbeing/internal/model"

	"go.uber.org/zap"
)

// Generator produces a validated report for a request
type Generator interface {
	Generate(ctx context.Context, req model.ReportRequest) (*model.ReportResponse, error)
}

// Orchestrator drives one generation through the state machine
// START -> SENDING -> (SUCCESS | RETRYING -> SENDING | FAILED).
type Orchestrator struct {
	config  *config.AIConfig
	client  Completer
	policy  RetryPolicy
	logger  *zap.Logger
	metrics *metrics.Metrics
	onState func(from, to State)
}

// Option customises an Orchestrator
type Option func(*Orchestrator)

// WithPolicy overrides the retry policy derived from the config
func WithPolicy(p RetryPolicy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithMetrics sets the collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithTransitionHook registers fn to be called on every state change
func WithTransitionHook(fn func(from, to State)) Option {
	return func(o *Orchestrator) { o.onState = fn }
}

// NewOrchestrator creates an orchestrator. A nil client means the default
// ChatClient for cfg.
func NewOrchestrator(cfg *config.AIConfig, client Completer, opts ...Option) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultAIConfig()
	}
	if client == nil {
		client = NewChatClient(cfg, nil)
	}
	o := &Orchestrator{
		config: cfg,
		client: client,
		policy: NewRetryPolicy(cfg.Timeout()),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Policy returns the retry policy in use
func (o *Orchestrator) Policy() RetryPolicy {
	return o.policy
}

type run struct {
	state State
}

// Generate runs a report generation. Every failure is one of the typed
// errors of this package, or the parent context's cancellation error.
func (o *Orchestrator) Generate(ctx context.Context, req model.ReportRequest) (*model.ReportResponse, error) {
	start := time.Now()
	r := &run{state: StateStart}

	resp, err := o.generate(ctx, r, req)
	o.metrics.ObserveOutcome(outcomeKind(err), time.Since(start).Seconds())
	if err != nil {
		o.logger.Warn("report generation failed",
			zap.String("kind", outcomeKind(err)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}
	o.logger.Info("report generated",
		zap.Int("dimensions", len(resp.DimensionAnalyses)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func (o *Orchestrator) generate(ctx context.Context, r *run, req model.ReportRequest) (*model.ReportResponse, error) {
	if !o.config.IsEnabled() {
		o.transition(r, StateFailed)
		o.logger.Error("report generation is not configured: LLM API key is not set")
		return nil, &ConfigurationError{Reason: "LLM API key is not set"}
	}
	prompt, err := BuildPrompt(req)
	if err != nil {
		o.transition(r, StateFailed)
		return nil, err
	}

	o.transition(r, StateSending)
	for attempt := 1; ; attempt++ {
		content, err := o.attempt(ctx, attempt, prompt)
		if err == nil {
			resp, err := DecodeResponse(content, req)
			if err != nil {
				o.transition(r, StateFailed)
				return nil, err
			}
			o.transition(r, StateSuccess)
			return resp, nil
		}
		if ctx.Err() == nil && o.policy.ShouldRetry(attempt, err) {
			o.logger.Warn("retrying report generation",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			o.transition(r, StateRetrying)
			o.transition(r, StateSending)
			continue
		}
		o.transition(r, StateFailed)
		return nil, err
	}
}

// attempt performs one bounded call and classifies timeouts
func (o *Orchestrator) attempt(ctx context.Context, attempt int, p Prompt) (string, error) {
	actx, cancel := context.WithTimeout(ctx, o.policy.AttemptTimeout)
	defer cancel()

	content, err := o.client.Complete(actx, p)
	label := strconv.Itoa(attempt)
	if err == nil {
		o.metrics.ObserveAttempt(label, "ok")
		return content, nil
	}

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		err = fmt.Errorf("report: generation cancelled: %w", ctx.Err())
	case errors.Is(actx.Err(), context.DeadlineExceeded):
		err = &TimeoutError{Attempts: attempt, After: o.policy.AttemptTimeout}
	}
	o.metrics.ObserveAttempt(label, outcomeKind(err))
	return "", err
}

func (o *Orchestrator) transition(r *run, to State) {
	from := r.state
	if !CanTransition(from, to) {
		o.logger.DPanic("illegal report state transition",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	}
	r.state = to
	o.metrics.ObserveTransition(from.String(), to.String())
	o.logger.Debug("report state", zap.Stringer("from", from), zap.Stringer("to", to))
	if o.onState != nil {
		o.onState(from, to)
	}
}

// KindOf returns the error kind of a report error, or "internal"
func KindOf(err error) string {
	return outcomeKind(err)
}

func outcomeKind(err error) string {
	if err == nil {
		return "ok"
	}
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}
	return "internal"
}
