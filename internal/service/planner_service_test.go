package service

import (
	"context"
	"errors"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/engine"
	"mediaplanner/internal/platform/apierr"
	"mediaplanner/internal/platform/logger"
	"net/http"
	"testing"
)

func newPlannerService(sessions *memSessions) *PlannerService {
	cat := catalog.MustLoad()
	return NewPlannerService(cat, engine.NewPlanner(cat), sessions, logger.Nop())
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	e, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected api error, got %v", err)
	}
	return e.Status
}

func TestGetStep(t *testing.T) {
	s := newPlannerService(newMemSessions())

	step, pos, err := s.GetStep("STEP_1A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if step.ID != "STEP_1A" || pos.Current != 1 || pos.Total != 9 {
		t.Fatalf("expected STEP_1A at 1/9, got %s at %d/%d", step.ID, pos.Current, pos.Total)
	}

	_, _, err = s.GetStep("")
	if statusOf(t, err) != http.StatusBadRequest || err.Error() != "Missing stepId parameter" {
		t.Fatalf("expected 400 missing stepId, got %v", err)
	}

	_, _, err = s.GetStep("STEP_X")
	if statusOf(t, err) != http.StatusNotFound || !errors.Is(err, ErrStepNotFound) {
		t.Fatalf("expected 404 step not found, got %v", err)
	}
	if err.Error() != "Step not found: STEP_X" {
		t.Fatalf("expected message with step id, got %q", err.Error())
	}
}

func TestRecommendSavesSession(t *testing.T) {
	sessions := newMemSessions()
	s := newPlannerService(sessions)

	res, err := s.Recommend(context.Background(), RecommendRequest{
		ClientName: "Acme",
		Answers: answerSet(
			"STEP_1", "conversion",
			"STEP_2", "high_ticket",
			"STEP_3A", "quality",
			"STEP_4", "high_budget",
		),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SessionID == "" {
		t.Fatal("expected session id")
	}
	saved, _ := sessions.GetByID(context.Background(), res.SessionID)
	if saved == nil || saved.ClientName != "Acme" || saved.Recommendation == nil {
		t.Fatalf("expected saved session with recommendation, got %+v", saved)
	}
	for _, a := range saved.Answers {
		if a.Timestamp.IsZero() {
			t.Fatal("expected answers to be timestamped")
		}
	}
	if res.Recommendation.Strategy != engine.StrategyRules {
		t.Fatalf("expected default strategy rules, got %s", res.Recommendation.Strategy)
	}
}

func TestRecommendValidation(t *testing.T) {
	s := newPlannerService(newMemSessions())
	ctx := context.Background()

	_, err := s.Recommend(ctx, RecommendRequest{})
	if statusOf(t, err) != http.StatusBadRequest || err.Error() != "Missing or invalid answers array" {
		t.Fatalf("expected missing answers error, got %v", err)
	}

	bad := answerSet("STEP_1", "conversion")
	bad[0].SelectedLabel = ""
	_, err = s.Recommend(ctx, RecommendRequest{Answers: bad})
	if statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete answer, got %v", err)
	}

	_, err = s.Recommend(ctx, RecommendRequest{Strategy: "magic", Answers: answerSet("STEP_1", "conversion")})
	if statusOf(t, err) != http.StatusBadRequest || !errors.Is(err, engine.ErrUnknownStrategy) {
		t.Fatalf("expected unknown strategy error, got %v", err)
	}
}

func TestRecommendSaveFailure(t *testing.T) {
	sessions := newMemSessions()
	sessions.failErr = errBoom
	s := newPlannerService(sessions)

	_, err := s.Recommend(context.Background(), RecommendRequest{Answers: answerSet("STEP_1", "conversion")})
	if statusOf(t, err) != http.StatusInternalServerError || !errors.Is(err, errBoom) {
		t.Fatalf("expected 500 wrapping store error, got %v", err)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s := newPlannerService(newMemSessions())
	_, err := s.GetSession(context.Background(), "missing")
	if statusOf(t, err) != http.StatusNotFound || !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{{0, 20}, {-3, 20}, {5, 5}, {100, 100}, {500, 100}}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Fatalf("clampLimit(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestRecommendRecordsOutcome(t *testing.T) {
	s := newPlannerService(newMemSessions())
	stats := &memStats{}
	s.SetStats(stats)
	ctx := context.Background()

	genZ := answerSet("STEP_1", "awareness", "STEP_1A", "genz")
	for i := 0; i < 2; i++ {
		if _, err := s.Recommend(ctx, RecommendRequest{Answers: genZ}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.Recommend(ctx, RecommendRequest{Strategy: engine.StrategyScored, Answers: answerSet("q10", "GOOGLE")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top, err := s.Stats(ctx, "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 1 || top[0].Count != 2 || top[0].Outcome != "Awareness + Gen Z → TikTok Hero" {
		t.Fatalf("expected gen Z rule counted twice, got %+v", top)
	}

	scored, _ := s.Stats(ctx, engine.StrategyScored, 10)
	if len(scored) != 1 || scored[0].Outcome != "C8" {
		t.Fatalf("expected C8 counted, got %+v", scored)
	}

	if _, err := s.Stats(ctx, "magic", 10); statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown strategy, got %v", err)
	}
}

func TestGetSessionReadThrough(t *testing.T) {
	sessions := newMemSessions()
	s := newPlannerService(sessions)
	hot := &memSessionCache{}
	s.SetSessionCache(hot)
	ctx := context.Background()

	res, err := s.Recommend(ctx, RecommendRequest{Answers: answerSet("STEP_1", "conversion")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hot.sets != 1 {
		t.Fatalf("expected new session cached, got %d writes", hot.sets)
	}

	delete(sessions.items, res.SessionID)
	got, err := s.GetSession(ctx, res.SessionID)
	if err != nil || got.ID != res.SessionID {
		t.Fatalf("expected cached session, got %+v (%v)", got, err)
	}
}
