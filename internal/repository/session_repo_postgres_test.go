package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"mediaplanner/internal/model"
)

func TestInsertSessionSQL(t *testing.T) {
	s := &model.Session{
		ID:             "0b5d6c1e-2f0a-4c1d-9b7e-3d2f1a0c9e8b",
		Strategy:       "rules",
		Answers:        []model.Answer{{StepID: "STEP_1", SelectedOptionID: "awareness", SelectedLabel: "Awareness"}},
		Recommendation: &model.Recommendation{Strategy: "rules", Summary: "ok"},
		CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	query, args, err := insertSessionSQL(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "INSERT INTO planner_sessions (id,strategy,client_name,answers,recommendation,created_at) VALUES ($1,$2,$3,$4,$5,$6)"
	if query != want {
		t.Fatalf("expected %q, got %q", want, query)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(args))
	}
	if answers, ok := args[3].([]byte); !ok || !strings.Contains(string(answers), `"stepId":"STEP_1"`) {
		t.Fatalf("expected answers encoded as JSON, got %v", args[3])
	}
}

func TestGetSessionSQL(t *testing.T) {
	query, args, err := getSessionSQL("abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(query, "FROM planner_sessions WHERE id = $1") {
		t.Fatalf("unexpected query %q", query)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Fatalf("expected id arg, got %v", args)
	}
}

func TestGetSessionMalformedIDIsNotFound(t *testing.T) {
	repo := NewPostgresSessionRepo(nil)
	for _, id := range []string{"abc", "nope", ""} {
		s, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("%q: expected no error, got %v", id, err)
		}
		if s != nil {
			t.Fatalf("%q: expected nil session, got %+v", id, s)
		}
	}
}

func TestListSessionsSQL(t *testing.T) {
	query, _, err := listSessionsSQL(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(query, "ORDER BY created_at DESC LIMIT 20") {
		t.Fatalf("unexpected query %q", query)
	}
}
