package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"wellbeing/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "wellbeing.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSubmissionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sub := &model.Submission{
		ID:        "sub-1",
		SessionID: "sess-1",
		Pseudo:    "marie_r",
		Profile:   model.Profile{Facility: "EHPAD Nord", Job: "IDE", Age: "30-39", Seniority: "1-5"},
		Answers:   []model.Answer{model.AnswerOf("q1_1", 4), {QuestionID: "q1_2"}},
		Scores:    []model.DimensionScore{{Dimension: "Stress", Average: 75, ItemCount: 1}},
		Consented: true,
	}
	require.NoError(t, s.Create(ctx, sub))
	assert.False(t, sub.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, "sub-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "EHPAD Nord", got.Profile.Facility)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, 4.0, *got.Answers[0].Value)
	assert.Nil(t, got.Answers[1].Value)
	assert.Equal(t, sub.Scores, got.Scores)

	assert.Error(t, s.Create(ctx, sub), "ids are unique")
}

func TestSQLiteGetMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	sub, err := s.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, sub)

	rep, err := s.GetAIReport(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, rep)
}

func TestSQLiteReportUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	pending := &model.AIReport{SubmissionID: "sub-1", Status: model.ReportPending, Locale: model.LocaleFR, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.SaveAIReport(ctx, pending))

	now := time.Now().UTC()
	ready := *pending
	ready.Status = model.ReportReady
	ready.ReadyAt = &now
	ready.Report = &model.ReportResponse{
		DimensionAnalyses: map[string]model.DimensionAnalysis{"Stress": {Definition: "d", Interpretation: "i"}},
		GlobalSynthesis:   "s",
	}
	require.NoError(t, s.SaveAIReport(ctx, &ready))

	got, err := s.GetAIReport(ctx, "sub-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.ReportReady, got.Status)
	assert.Equal(t, "s", got.Report.GlobalSynthesis)
	assert.NotNil(t, got.ReadyAt)
}

func TestOpenSQLiteReportsOpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }

	_, err := OpenSQLite(filepath.Join(t.TempDir(), "x.db"))
	assert.ErrorContains(t, err, "boom")
}

func TestStoreAdapter(t *testing.T) {
	s := openTestStore(t)
	st := s.Store()
	assert.NotNil(t, st.Submissions)
	assert.NotNil(t, st.Reports)
}
