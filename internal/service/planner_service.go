package service

import (
	"context"
	"errors"
	"fmt"
	"mediaplanner/internal/cache"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/engine"
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/apierr"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/repository"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RecommendRequest is a full answer set submitted for a recommendation
type RecommendRequest struct {
	Strategy   string         `json:"strategy,omitempty"`
	ClientName string         `json:"clientName,omitempty"`
	Answers    []model.Answer `json:"answers"`
}

// RecommendResult is a recommendation and the session it was saved under
type RecommendResult struct {
	Recommendation model.Recommendation `json:"recommendation"`
	SessionID      string               `json:"sessionId"`
}

// PlannerService serves the questionnaire and stores recommendations
type PlannerService struct {
	cat      *catalog.Catalog
	planner  *engine.Planner
	sessions repository.SessionRepo
	stats    cache.StatsCache
	hot      cache.SessionCache
	log      *logger.Logger
	now      func() time.Time
}

// NewPlannerService creates a new planner service
func NewPlannerService(cat *catalog.Catalog, planner *engine.Planner, sessions repository.SessionRepo, log *logger.Logger) *PlannerService {
	return &PlannerService{
		cat:      cat,
		planner:  planner,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// SetStats enables outcome counting
func (s *PlannerService) SetStats(stats cache.StatsCache) {
	s.stats = stats
}

// SetSessionCache puts a read-through cache in front of the session store
func (s *PlannerService) SetSessionCache(c cache.SessionCache) {
	s.hot = c
}

// GetStep returns a step with its position in the flow
func (s *PlannerService) GetStep(id string) (model.Step, model.StepProgress, error) {
	if id == "" {
		return model.Step{}, model.StepProgress{}, badRequest("missing_step_id", "Missing stepId parameter")
	}
	step, ok := s.cat.Step(id)
	if !ok {
		return model.Step{}, model.StepProgress{}, notFound("step_not_found", fmt.Errorf("%w: %s", ErrStepNotFound, id))
	}
	return step, s.cat.StepProgress(id), nil
}

// Recommend validates answers, runs the engine and persists the session
func (s *PlannerService) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResult, error) {
	if err := validateAnswers(req.Answers); err != nil {
		return nil, err
	}
	if !s.planner.HasStrategy(req.Strategy) {
		return nil, invalid("unknown_strategy", fmt.Errorf("%w: %s", engine.ErrUnknownStrategy, req.Strategy))
	}

	answers := stampAnswers(req.Answers, s.now())
	rec, err := s.planner.Recommend(req.Strategy, answers)
	if errors.Is(err, engine.ErrUnknownStrategy) {
		return nil, invalid("unknown_strategy", err)
	}
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:             uuid.New().String(),
		Strategy:       rec.Strategy,
		ClientName:     req.ClientName,
		Answers:        answers,
		Recommendation: &rec,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.log.Error("save session failed", "sessionId", session.ID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "session_save_failed", fmt.Errorf("save session: %w", err))
	}

	s.remember(ctx, session)
	s.recordOutcome(ctx, rec)

	s.log.Info("recommendation created",
		"sessionId", session.ID,
		"strategy", rec.Strategy,
		"rule", rec.RuleName,
		"answers", len(answers),
	)
	return &RecommendResult{Recommendation: rec, SessionID: session.ID}, nil
}

// GetSession retrieves a saved session
func (s *PlannerService) GetSession(ctx context.Context, id string) (*model.Session, error) {
	if s.hot != nil {
		cached, err := s.hot.Get(ctx, id)
		if err != nil {
			s.log.Warn("session cache read failed", "sessionId", id, "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFound("session_not_found", ErrSessionNotFound)
	}
	s.remember(ctx, session)
	return session, nil
}

func (s *PlannerService) remember(ctx context.Context, session *model.Session) {
	if s.hot == nil {
		return
	}
	if err := s.hot.Set(ctx, session); err != nil {
		s.log.Warn("session cache write failed", "sessionId", session.ID, "error", err)
	}
}

// ListSessions returns the newest sessions
func (s *PlannerService) ListSessions(ctx context.Context, limit int) ([]*model.Session, error) {
	return s.sessions.ListRecent(ctx, clampLimit(limit))
}

// Stats returns the most frequent outcomes for a strategy
func (s *PlannerService) Stats(ctx context.Context, strategy string, limit int) ([]cache.StatEntry, error) {
	if strategy == "" {
		strategy = engine.StrategyRules
	}
	if !s.planner.HasStrategy(strategy) {
		return nil, invalid("unknown_strategy", fmt.Errorf("%w: %s", engine.ErrUnknownStrategy, strategy))
	}
	if s.stats == nil {
		return []cache.StatEntry{}, nil
	}
	return s.stats.Top(ctx, strategy, clampLimit(limit))
}

// recordOutcome counts the rule or bucket behind rec. Failures only log.
func (s *PlannerService) recordOutcome(ctx context.Context, rec model.Recommendation) {
	if s.stats == nil {
		return
	}
	outcome := rec.RuleName
	if rec.Classification != nil {
		outcome = rec.Classification.BucketID
	}
	if err := s.stats.Record(ctx, rec.Strategy, outcome); err != nil {
		s.log.Warn("record outcome failed", "strategy", rec.Strategy, "error", err)
	}
}

func validateAnswers(answers []model.Answer) error {
	if len(answers) == 0 {
		return badRequest("invalid_answers", "Missing or invalid answers array")
	}
	for _, a := range answers {
		if a.StepID == "" || a.SelectedOptionID == "" || a.SelectedLabel == "" {
			return badRequest("invalid_answer_format", "Invalid answer format. Each answer must have stepId, selectedOptionId, and selectedLabel")
		}
	}
	return nil
}

// stampAnswers copies answers, filling in a missing timestamp
func stampAnswers(answers []model.Answer, now time.Time) []model.Answer {
	out := make([]model.Answer, len(answers))
	for i, a := range answers {
		if a.Timestamp.IsZero() {
			a.Timestamp = now.UTC()
		}
		out[i] = a
	}
	return out
}
