package service

import (
	"context"
	"errors"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/engine"
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/logger"
	"net/http"
	"testing"
)

func newProgressService() (*ProgressService, *memProgress, *memSessions) {
	cat := catalog.MustLoad()
	sessions := newMemSessions()
	progress := newMemProgress()
	planner := NewPlannerService(cat, engine.NewPlanner(cat), sessions, logger.Nop())
	return NewProgressService(cat, planner, progress, logger.Nop()), progress, sessions
}

func TestProgressRulesFlow(t *testing.T) {
	s, progress, sessions := newProgressService()
	ctx := context.Background()

	view, err := s.Start(ctx, "", "Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Step == nil || view.Step.ID != "STEP_1" || view.Position.Current != 1 {
		t.Fatalf("expected STEP_1, got %+v", view)
	}
	id := view.Progress.ID

	path := [][2]string{
		{"STEP_1", "conversion"},
		{"STEP_2", "low_ticket"},
		{"STEP_3B", "volume"},
		{"STEP_4", "high_budget"},
		{"STEP_5", "prefer_volume"},
		{"STEP_6", "burst"},
		{"STEP_7", "has_data"},
		{"STEP_8", "no_preference"},
	}
	for _, p := range path {
		out, err := s.Answer(ctx, id, p[0], p[1])
		if err != nil {
			t.Fatalf("answer %s: unexpected error: %v", p[0], err)
		}
		if out.Next == nil || out.Result != nil {
			t.Fatalf("answer %s: expected next step, got %+v", p[0], out)
		}
	}

	out, err := s.Answer(ctx, id, "STEP_9", "good_tracking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result == nil {
		t.Fatal("expected final result")
	}
	if len(out.Result.Recommendation.Allocations) == 0 {
		t.Fatal("expected allocations")
	}
	if saved, _ := sessions.GetByID(ctx, out.Result.SessionID); saved == nil || len(saved.Answers) != 9 {
		t.Fatalf("expected saved session with 9 answers, got %+v", saved)
	}
	if p, _ := progress.Get(ctx, id); p != nil {
		t.Fatal("expected finished progress to be deleted")
	}
}

func TestProgressScoredStart(t *testing.T) {
	s, _, _ := newProgressService()
	view, err := s.Start(context.Background(), engine.StrategyScored, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Question == nil || view.Question.ID != "q1" || view.Step != nil {
		t.Fatalf("expected q1, got %+v", view)
	}

	out, err := s.Answer(context.Background(), view.Progress.ID, "q1", "High")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Next == nil || out.Next.Question.ID != "q2" {
		t.Fatalf("expected q2 next, got %+v", out.Next)
	}
}

func TestProgressErrors(t *testing.T) {
	s, _, _ := newProgressService()
	ctx := context.Background()

	if _, err := s.Start(ctx, "magic", ""); statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown strategy, got %v", err)
	}
	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrProgressNotFound) {
		t.Fatalf("expected progress not found, got %v", err)
	}

	view, _ := s.Start(ctx, "", "")
	id := view.Progress.ID

	_, err := s.Answer(ctx, id, "STEP_2", "low_ticket")
	if statusOf(t, err) != http.StatusConflict || !errors.Is(err, ErrStepMismatch) {
		t.Fatalf("expected 409 step mismatch, got %v", err)
	}
	_, err = s.Answer(ctx, id, "STEP_1", "bogus")
	if statusOf(t, err) != http.StatusBadRequest || !errors.Is(err, ErrOptionNotFound) {
		t.Fatalf("expected 400 option not found, got %v", err)
	}

	got, err := s.Get(ctx, id)
	if err != nil || len(got.Progress.Answers) != 0 {
		t.Fatalf("expected rejected answers to leave progress unchanged, got %+v (%v)", got, err)
	}
}

// staleProgress keeps serving the first snapshot it read, like a second
// request that loaded the run before the first one finished it
type staleProgress struct {
	*memProgress
	snapshot *model.Progress
}

func (s *staleProgress) Get(ctx context.Context, id string) (*model.Progress, error) {
	if s.snapshot == nil {
		p, err := s.memProgress.Get(ctx, id)
		if err != nil || p == nil {
			return p, err
		}
		s.snapshot = p
	}
	cp := *s.snapshot
	cp.Answers = append([]model.Answer(nil), s.snapshot.Answers...)
	return &cp, nil
}

var rulesPathToLastStep = [][2]string{
	{"STEP_1", "conversion"},
	{"STEP_2", "low_ticket"},
	{"STEP_3B", "volume"},
	{"STEP_4", "high_budget"},
	{"STEP_5", "prefer_volume"},
	{"STEP_6", "burst"},
	{"STEP_7", "has_data"},
	{"STEP_8", "no_preference"},
}

func TestProgressTerminalAnswerSavesOnce(t *testing.T) {
	cat := catalog.MustLoad()
	sessions := newMemSessions()
	progress := newMemProgress()
	planner := NewPlannerService(cat, engine.NewPlanner(cat), sessions, logger.Nop())
	ctx := context.Background()

	s := NewProgressService(cat, planner, progress, logger.Nop())
	view, err := s.Start(ctx, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := view.Progress.ID
	for _, p := range rulesPathToLastStep {
		if _, err := s.Answer(ctx, id, p[0], p[1]); err != nil {
			t.Fatalf("answer %s: unexpected error: %v", p[0], err)
		}
	}

	stale := NewProgressService(cat, planner, &staleProgress{memProgress: progress}, logger.Nop())
	if _, err := stale.Get(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out, err := s.Answer(ctx, id, "STEP_9", "good_tracking"); err != nil || out.Result == nil {
		t.Fatalf("expected final result, got %+v (%v)", out, err)
	}
	_, err = stale.Answer(ctx, id, "STEP_9", "good_tracking")
	if statusOf(t, err) != http.StatusConflict || !errors.Is(err, ErrProgressClaimed) {
		t.Fatalf("expected 409 progress claimed, got %v", err)
	}
	if n := len(sessions.items); n != 1 {
		t.Fatalf("expected 1 saved session, got %d", n)
	}
}

func TestProgressRestoredWhenSaveFails(t *testing.T) {
	s, progress, sessions := newProgressService()
	ctx := context.Background()

	view, _ := s.Start(ctx, "", "")
	id := view.Progress.ID
	for _, p := range rulesPathToLastStep {
		if _, err := s.Answer(ctx, id, p[0], p[1]); err != nil {
			t.Fatalf("answer %s: unexpected error: %v", p[0], err)
		}
	}

	sessions.failErr = errBoom
	if _, err := s.Answer(ctx, id, "STEP_9", "good_tracking"); statusOf(t, err) != http.StatusInternalServerError {
		t.Fatalf("expected 500 on save failure, got %v", err)
	}
	p, _ := progress.Get(ctx, id)
	if p == nil || p.CurrentStepID != "STEP_9" || len(p.Answers) != 8 {
		t.Fatalf("expected run restored at STEP_9 with 8 answers, got %+v", p)
	}

	sessions.failErr = nil
	if out, err := s.Answer(ctx, id, "STEP_9", "good_tracking"); err != nil || out.Result == nil {
		t.Fatalf("expected retry to finish, got %+v (%v)", out, err)
	}
}

func TestProgressDiscard(t *testing.T) {
	s, progress, _ := newProgressService()
	ctx := context.Background()

	view, _ := s.Start(ctx, "", "")
	if err := s.Discard(ctx, view.Progress.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, _ := progress.Get(ctx, view.Progress.ID); p != nil {
		t.Fatal("expected discarded progress to be gone")
	}
}
