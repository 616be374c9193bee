package service

import (
	"context"
	"errors"
	"mediaplanner/internal/cache"
	"mediaplanner/internal/model"
	"sort"
	"sync"
)

type memSessions struct {
	mu      sync.Mutex
	items   map[string]*model.Session
	failErr error
}

func newMemSessions() *memSessions {
	return &memSessions{items: make(map[string]*model.Session)}
}

func (m *memSessions) Create(ctx context.Context, s *model.Session) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[s.ID] = s
	return nil
}

func (m *memSessions) GetByID(ctx context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

func (m *memSessions) ListRecent(ctx context.Context, limit int) ([]*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Session, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memSessionCache struct {
	mu    sync.Mutex
	items map[string]*model.Session
	sets  int
}

func (m *memSessionCache) Set(ctx context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = map[string]*model.Session{}
	}
	m.items[s.ID] = s
	m.sets++
	return nil
}

func (m *memSessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id], nil
}

type memProgress struct {
	mu    sync.Mutex
	items map[string]model.Progress
}

func newMemProgress() *memProgress {
	return &memProgress{items: make(map[string]model.Progress)}
}

func (m *memProgress) Set(ctx context.Context, p *model.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Answers = append([]model.Answer(nil), p.Answers...)
	m.items[p.ID] = cp
	return nil
}

func (m *memProgress) Get(ctx context.Context, id string) (*model.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProgress) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[id]
	delete(m.items, id)
	return ok, nil
}

type memBriefs struct {
	mu    sync.Mutex
	items []*model.Brief
}

func (m *memBriefs) Create(ctx context.Context, b *model.Brief) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, b)
	return nil
}

func (m *memBriefs) List(ctx context.Context, limit int) ([]*model.Brief, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) > limit {
		return m.items[:limit], nil
	}
	return m.items, nil
}

func (m *memBriefs) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.items {
		if b.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memStats struct {
	mu     sync.Mutex
	counts map[string]map[string]int
}

func (m *memStats) Record(ctx context.Context, strategy, outcome string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]map[string]int{}
	}
	if m.counts[strategy] == nil {
		m.counts[strategy] = map[string]int{}
	}
	m.counts[strategy][outcome]++
	return nil
}

func (m *memStats) Top(ctx context.Context, strategy string, limit int) ([]cache.StatEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []cache.StatEntry{}
	for outcome, n := range m.counts[strategy] {
		out = append(out, cache.StatEntry{Outcome: outcome, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	for i := range out {
		out[i].Rank = i + 1
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// stubGenerator returns a fixed reply and records the last prompt
type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

var errBoom = errors.New("boom")

func answerSet(pairs ...string) []model.Answer {
	out := make([]model.Answer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Answer{StepID: pairs[i], SelectedOptionID: pairs[i+1], SelectedLabel: pairs[i+1]})
	}
	return out
}
