package service

import (
	"context"
	"testing"
	"time"

	"wellbeing/internal/events"
	"wellbeing/internal/model"
	"wellbeing/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *memStore {
	t.Helper()
	store := newMemStore()
	require.NoError(t, store.Create(context.Background(), &model.Submission{
		ID: "sub-1",
		Scores: []model.DimensionScore{
			{Dimension: "Stress et détente", Average: 66.6666, ItemCount: 3},
			{Dimension: "Charge de travail", Average: 25, ItemCount: 2},
		},
	}))
	return store
}

func sampleResponse() *model.ReportResponse {
	return &model.ReportResponse{
		DimensionAnalyses: map[string]model.DimensionAnalysis{
			"Stress et détente": {Definition: "d", Interpretation: "i"},
		},
		GlobalSynthesis: "s",
	}
}

func TestTriggerAIReportCompletes(t *testing.T) {
	store := seededStore(t)
	gen := &stubGenerator{resp: sampleResponse()}
	pub := &recordingPublisher{}
	hub := &recordingBroadcaster{}
	svc := NewReportService(gen, store, store, pub, nil, time.Second)
	svc.SetBroadcaster(hub)

	pending, err := svc.TriggerAIReport(context.Background(), "sub-1", model.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, model.ReportPending, pending.Status)
	svc.Wait()

	got, err := svc.GetAIReport(context.Background(), "sub-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.ReportReady, got.Status)
	assert.Equal(t, "s", got.Report.GlobalSynthesis)
	assert.NotNil(t, got.ReadyAt)

	require.Len(t, gen.seen, 1)
	assert.Equal(t, model.LocaleEN, gen.seen[0].Locale)
	assert.Equal(t, 66.7, gen.seen[0].Results[0].Value)

	assert.Equal(t, []string{MsgReportPending, MsgReportReady}, hub.types())
	assert.Equal(t, []string{events.TypeReportReady}, pub.types())
}

func TestTriggerAIReportRecordsFailureKind(t *testing.T) {
	store := seededStore(t)
	gen := &stubGenerator{err: &report.TimeoutError{Attempts: 2, After: time.Second}}
	hub := &recordingBroadcaster{}
	svc := NewReportService(gen, store, store, nil, nil, time.Second)
	svc.SetBroadcaster(hub)

	_, err := svc.TriggerAIReport(context.Background(), "sub-1", "")
	require.NoError(t, err)
	svc.Wait()

	got, err := svc.GetAIReport(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, model.ReportFailed, got.Status)
	assert.Equal(t, report.KindTimeout, got.ErrorKind)
	assert.Nil(t, got.Report)
	assert.Equal(t, []string{MsgReportPending, MsgReportFailed}, hub.types())
}

func TestTriggerAIReportReturnsReadyReport(t *testing.T) {
	store := seededStore(t)
	require.NoError(t, store.SaveAIReport(context.Background(), &model.AIReport{
		SubmissionID: "sub-1", Status: model.ReportReady, Report: sampleResponse(),
	}))
	gen := &stubGenerator{}
	svc := NewReportService(gen, store, store, nil, nil, time.Second)

	got, err := svc.TriggerAIReport(context.Background(), "sub-1", model.LocaleFR)
	require.NoError(t, err)
	assert.Equal(t, model.ReportReady, got.Status)
	svc.Wait()
	assert.Equal(t, 0, gen.calls)
}

func TestTriggerAIReportErrors(t *testing.T) {
	store := seededStore(t)
	svc := NewReportService(&stubGenerator{}, store, store, nil, nil, time.Second)

	_, err := svc.TriggerAIReport(context.Background(), "missing", model.LocaleFR)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.TriggerAIReport(context.Background(), "sub-1", "de")
	var ie *report.InvalidRequestError
	assert.ErrorAs(t, err, &ie)

	disabled := NewReportService(&stubGenerator{}, nil, nil, nil, nil, time.Second)
	_, err = disabled.TriggerAIReport(context.Background(), "sub-1", model.LocaleFR)
	assert.ErrorIs(t, err, ErrStorageDisabled)
	_, err = disabled.GetAIReport(context.Background(), "sub-1")
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestGeneratePassesThrough(t *testing.T) {
	gen := &stubGenerator{resp: sampleResponse()}
	svc := NewReportService(gen, nil, nil, nil, nil, time.Second)
	resp, err := svc.Generate(context.Background(), model.ReportRequest{Locale: model.LocaleFR})
	require.NoError(t, err)
	assert.Equal(t, "s", resp.GlobalSynthesis)
}
