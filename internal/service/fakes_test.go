package service

import (
	"context"
	"sync"

	"wellbeing/internal/model"
)

type memStore struct {
	mu          sync.Mutex
	submissions map[string]model.Submission
	reports     map[string]model.AIReport
}

func newMemStore() *memStore {
	return &memStore{submissions: map[string]model.Submission{}, reports: map[string]model.AIReport{}}
}

func (m *memStore) Create(_ context.Context, s *model.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.ID] = *s
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) SaveAIReport(_ context.Context, r *model.AIReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.SubmissionID] = *r
	return nil
}

func (m *memStore) GetAIReport(_ context.Context, id string) (*model.AIReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.SubmissionEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e model.SubmissionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	msgs []string
}

func (b *recordingBroadcaster) BroadcastToSubmission(_ string, msgType string, _ interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msgType)
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.msgs...)
}

type stubGenerator struct {
	mu    sync.Mutex
	calls int
	resp  *model.ReportResponse
	err   error
	seen  []model.ReportRequest
}

func (g *stubGenerator) Generate(_ context.Context, req model.ReportRequest) (*model.ReportResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.seen = append(g.seen, req)
	return g.resp, g.err
}
