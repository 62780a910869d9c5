package service

import (
	"context"
	"sync"
	"time"

	"wellbeing/internal/events"
	"wellbeing/internal/model"
	"wellbeing/internal/report"
	"wellbeing/internal/repository"

	"go.uber.org/zap"
)

// ReportService handles synchronous and per-submission report generation
type ReportService struct {
	generator   report.Generator
	submissions repository.SubmissionRepo
	reports     repository.ReportRepo
	publisher   events.Publisher
	broadcaster Broadcaster
	log         *zap.Logger
	budget      time.Duration
	now         func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

// NewReportService creates a new report service. budget bounds a background
// generation; it should cover every attempt of the retry policy.
func NewReportService(
	generator report.Generator,
	submissions repository.SubmissionRepo,
	reports repository.ReportRepo,
	publisher events.Publisher,
	log *zap.Logger,
	budget time.Duration,
) *ReportService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{
		generator:   generator,
		submissions: submissions,
		reports:     reports,
		publisher:   publisher,
		log:         log,
		budget:      budget,
		now:         time.Now,
		inflight:    make(map[string]struct{}),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ReportService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Generate produces a report for caller-supplied results
func (s *ReportService) Generate(ctx context.Context, req model.ReportRequest) (*model.ReportResponse, error) {
	return s.generator.Generate(ctx, req)
}

// TriggerAIReport starts async AI report generation for a stored submission.
// A generation already running or finished for the submission is returned as is.
func (s *ReportService) TriggerAIReport(ctx context.Context, submissionID string, locale model.Locale) (*model.AIReport, error) {
	if s.submissions == nil || s.reports == nil {
		return nil, ErrStorageDisabled
	}
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}

	existing, err := s.reports.GetAIReport(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == model.ReportReady {
		return existing, nil
	}

	req, err := report.BuildReportRequest(sub.Scores, locale)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, running := s.inflight[submissionID]; running {
		s.mu.Unlock()
		if existing != nil {
			return existing, nil
		}
		return &model.AIReport{SubmissionID: submissionID, Status: model.ReportPending, Locale: req.Locale}, nil
	}
	s.inflight[submissionID] = struct{}{}
	s.mu.Unlock()

	pending := &model.AIReport{
		SubmissionID: submissionID,
		Status:       model.ReportPending,
		Locale:       req.Locale,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.reports.SaveAIReport(ctx, pending); err != nil {
		s.release(submissionID)
		return nil, err
	}
	s.broadcast(submissionID, MsgReportPending, map[string]interface{}{"submissionId": submissionID})

	s.wg.Add(1)
	go s.generateAIReport(*pending, req)
	return pending, nil
}

// generateAIReport runs detached from the triggering request
func (s *ReportService) generateAIReport(rep model.AIReport, req model.ReportRequest) {
	defer s.wg.Done()
	defer s.release(rep.SubmissionID)

	ctx, cancel := context.WithTimeout(context.Background(), s.budget)
	defer cancel()

	log := s.log.With(zap.String("submission_id", rep.SubmissionID))
	resp, err := s.generator.Generate(ctx, req)
	now := s.now().UTC()
	rep.ReadyAt = &now

	event := model.SubmissionEvent{SubmissionID: rep.SubmissionID, OccurredAt: now}
	if err != nil {
		rep.Status = model.ReportFailed
		rep.ErrorKind = report.KindOf(err)
		rep.Error = err.Error()
		event.Type = events.TypeReportFailed
	} else {
		rep.Status = model.ReportReady
		rep.Report = resp
		event.Type = events.TypeReportReady
	}

	// The generation context may be spent; storing the outcome gets its own deadline.
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer saveCancel()
	if err := s.reports.SaveAIReport(saveCtx, &rep); err != nil {
		log.Error("report outcome not stored", zap.Error(err))
	}

	if rep.Status == model.ReportReady {
		s.broadcast(rep.SubmissionID, MsgReportReady, &rep)
	} else {
		s.broadcast(rep.SubmissionID, MsgReportFailed, map[string]interface{}{
			"submissionId": rep.SubmissionID,
			"kind":         rep.ErrorKind,
		})
	}
	if err := s.publisher.Publish(saveCtx, event); err != nil {
		log.Warn("report event not published", zap.Error(err))
	}
	log.Info("report generation finished", zap.String("status", string(rep.Status)))
}

// GetAIReport retrieves the AI report of a submission, nil when never triggered
func (s *ReportService) GetAIReport(ctx context.Context, submissionID string) (*model.AIReport, error) {
	if s.reports == nil {
		return nil, ErrStorageDisabled
	}
	return s.reports.GetAIReport(ctx, submissionID)
}

// Wait blocks until background generations have finished
func (s *ReportService) Wait() {
	s.wg.Wait()
}

func (s *ReportService) release(submissionID string) {
	s.mu.Lock()
	delete(s.inflight, submissionID)
	s.mu.Unlock()
}

func (s *ReportService) broadcast(submissionID, msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSubmission(submissionID, msgType, payload)
	}
}
