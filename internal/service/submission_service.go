package service

import (
	"context"
	"fmt"
	"time"

	"wellbeing/internal/cache"
	"wellbeing/internal/catalog"
	"wellbeing/internal/events"
	"wellbeing/internal/metrics"
	"wellbeing/internal/model"
	"wellbeing/internal/repository"
	"wellbeing/internal/scoring"
	"wellbeing/internal/validate"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmissionService scores questionnaires, stores them and manages drafts
type SubmissionService struct {
	catalog   *catalog.Catalog
	repo      repository.SubmissionRepo
	drafts    cache.DraftCache
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
	validate  *validator.Validate
	now       func() time.Time
}

// NewSubmissionService creates a new submission service. A nil repo means
// submissions are scored but not persisted.
func NewSubmissionService(
	cat *catalog.Catalog,
	repo repository.SubmissionRepo,
	drafts cache.DraftCache,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) *SubmissionService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{
		catalog:   cat,
		repo:      repo,
		drafts:    drafts,
		publisher: publisher,
		metrics:   m,
		log:       log,
		validate:  validate.New(),
		now:       time.Now,
	}
}

// Catalog returns the question catalog the service scores against
func (s *SubmissionService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Score computes decorated dimension scores without storing anything
func (s *SubmissionService) Score(answers []model.Answer) ([]model.ScoredDimension, error) {
	scores, err := scoring.Aggregate(s.catalog.Questions(), answers)
	if err != nil {
		return nil, err
	}
	return scoring.Decorate(scores), nil
}

// Submit validates, scores and stores a completed questionnaire
func (s *SubmissionService) Submit(ctx context.Context, claims *model.RespondentClaims, req model.SubmitRequest) (*model.SubmitResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		s.metrics.ObserveSubmission("rejected")
		return nil, &ValidationError{Fields: validate.Describe(err)}
	}
	if !req.Consent {
		s.metrics.ObserveSubmission("rejected")
		return nil, ErrConsentRequired
	}

	result, err := scoring.Score(s.catalog.Questions(), req.Answers)
	if err != nil {
		s.metrics.ObserveSubmission("rejected")
		return nil, err
	}
	if len(result.Dimensions) == 0 {
		s.metrics.ObserveSubmission("rejected")
		return nil, ErrNothingAnswered
	}

	submission := &model.Submission{
		ID:         uuid.NewString(),
		Profile:    req.Profile,
		Context:    req.Context,
		Answers:    req.Answers,
		Normalized: result.Normalized,
		Scores:     result.Dimensions,
		Consented:  true,
		CreatedAt:  s.now().UTC(),
	}
	if submission.Context.QuestionnaireVersion == "" {
		submission.Context.QuestionnaireVersion = s.catalog.Version()
	}
	if claims != nil {
		submission.SessionID = claims.SessionID
		submission.Pseudo = claims.Pseudo
	}

	resp := &model.SubmitResponse{
		Scores: scoring.Decorate(result.Dimensions),
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, submission); err != nil {
			s.metrics.ObserveSubmission("error")
			return nil, fmt.Errorf("store submission: %w", err)
		}
		resp.SubmissionID = submission.ID
		resp.Persisted = true
		s.metrics.ObserveSubmission("persisted")
	} else {
		s.metrics.ObserveSubmission("unpersisted")
	}

	s.log.Info("submission scored",
		zap.String("submission_id", submission.ID),
		zap.Bool("persisted", resp.Persisted),
		zap.Int("dimensions", len(result.Dimensions)),
	)

	if resp.Persisted {
		if err := s.publisher.Publish(ctx, model.SubmissionEvent{
			Type:         events.TypeSubmissionScored,
			SubmissionID: submission.ID,
			Facility:     submission.Profile.Facility,
			Scores:       submission.Scores,
			OccurredAt:   submission.CreatedAt,
		}); err != nil {
			s.log.Warn("submission event not published", zap.String("submission_id", submission.ID), zap.Error(err))
		}
	}

	if claims != nil && s.drafts != nil {
		if err := s.drafts.Delete(ctx, claims.SessionID); err != nil {
			s.log.Warn("draft not cleared", zap.String("session_id", claims.SessionID), zap.Error(err))
		}
	}
	return resp, nil
}

// Get returns a stored submission
func (s *SubmissionService) Get(ctx context.Context, id string) (*model.Submission, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

// SaveDraft stores the in-progress answers of a session. Answers are checked
// against the catalog so a draft can always be submitted later.
func (s *SubmissionService) SaveDraft(ctx context.Context, sessionID string, draft model.Draft) (*model.Draft, error) {
	if _, err := scoring.Score(s.catalog.Questions(), draft.Answers); err != nil {
		return nil, err
	}
	if draft.Step < 0 {
		return nil, &ValidationError{Fields: []string{"Draft.Step: min"}}
	}
	draft.SessionID = sessionID
	if draft.Answers == nil {
		draft.Answers = []model.Answer{}
	}
	if err := s.drafts.Set(ctx, &draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return &draft, nil
}

// GetDraft returns the stored draft of a session
func (s *SubmissionService) GetDraft(ctx context.Context, sessionID string) (*model.Draft, error) {
	draft, err := s.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrNotFound
	}
	return draft, nil
}

// DeleteDraft discards the draft of a session
func (s *SubmissionService) DeleteDraft(ctx context.Context, sessionID string) error {
	return s.drafts.Delete(ctx, sessionID)
}
