package service

import (
	"context"
	"fmt"
	"mediaplanner/internal/cache"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/engine"
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/apierr"
	"mediaplanner/internal/platform/logger"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ProgressView is an unfinished run and the question to show next.
// Step is set for the rules flow, Question for the scored flow.
type ProgressView struct {
	Progress *model.Progress       `json:"progress"`
	Step     *model.Step           `json:"step,omitempty"`
	Question *model.ScoredQuestion `json:"question,omitempty"`
	Position model.StepProgress    `json:"position"`
}

// AnswerOutcome is either the next view or the final result
type AnswerOutcome struct {
	Next   *ProgressView
	Result *RecommendResult
}

// ProgressService drives the questionnaire one answer at a time
type ProgressService struct {
	cat     *catalog.Catalog
	planner *PlannerService
	cache   cache.ProgressCache
	log     *logger.Logger
	now     func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(cat *catalog.Catalog, planner *PlannerService, progressCache cache.ProgressCache, log *logger.Logger) *ProgressService {
	return &ProgressService{
		cat:     cat,
		planner: planner,
		cache:   progressCache,
		log:     log,
		now:     time.Now,
	}
}

// Start opens a new run at the first step of the chosen strategy
func (s *ProgressService) Start(ctx context.Context, strategy, clientName string) (*ProgressView, error) {
	if strategy == "" {
		strategy = engine.StrategyRules
	}

	var first string
	switch strategy {
	case engine.StrategyRules:
		first = s.cat.FirstStep().ID
	case engine.StrategyScored:
		questions := s.cat.ScoredQuestions()
		if len(questions) == 0 {
			return nil, badRequest("unknown_strategy", "scored questionnaire is not available")
		}
		first = questions[0].ID
	default:
		return nil, invalid("unknown_strategy", fmt.Errorf("%w: %s", engine.ErrUnknownStrategy, strategy))
	}

	now := s.now().UTC()
	p := &model.Progress{
		ID:            uuid.New().String(),
		Strategy:      strategy,
		ClientName:    clientName,
		CurrentStepID: first,
		Answers:       []model.Answer{},
		StartedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.cache.Set(ctx, p); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	s.log.Debug("progress started", "progressId", p.ID, "strategy", strategy)
	return s.view(p), nil
}

// Get returns a run with its current step
func (s *ProgressService) Get(ctx context.Context, id string) (*ProgressView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(p), nil
}

// Answer records an answer for the current step and advances the run.
// Answering the terminal step computes and saves the recommendation.
func (s *ProgressService) Answer(ctx context.Context, id, stepID, optionID string) (*AnswerOutcome, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if stepID != p.CurrentStepID {
		return nil, apierr.New(http.StatusConflict, "step_mismatch",
			fmt.Errorf("%w: expected %s, got %s", ErrStepMismatch, p.CurrentStepID, stepID))
	}

	label, next, err := s.resolve(p.Strategy, stepID, optionID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p.Answers = append(p.Answers, model.Answer{
		StepID:           stepID,
		SelectedOptionID: optionID,
		SelectedLabel:    label,
		Timestamp:        now,
	})
	p.UpdatedAt = now

	if next == "" {
		return s.finish(ctx, p)
	}

	p.CurrentStepID = next
	if err := s.cache.Set(ctx, p); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return &AnswerOutcome{Next: s.view(p)}, nil
}

// finish claims the run by deleting it, so only one caller saves a session.
// The run is put back when the recommendation cannot be saved.
func (s *ProgressService) finish(ctx context.Context, p *model.Progress) (*AnswerOutcome, error) {
	claimed, err := s.cache.Delete(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("claim progress: %w", err)
	}
	if !claimed {
		return nil, apierr.New(http.StatusConflict, "progress_claimed", ErrProgressClaimed)
	}

	res, err := s.planner.Recommend(ctx, RecommendRequest{
		Strategy:   p.Strategy,
		ClientName: p.ClientName,
		Answers:    p.Answers,
	})
	if err != nil {
		p.Answers = p.Answers[:len(p.Answers)-1]
		if serr := s.cache.Set(ctx, p); serr != nil {
			s.log.Warn("restore progress failed", "progressId", p.ID, "error", serr)
		}
		return nil, err
	}
	return &AnswerOutcome{Result: res}, nil
}

// Discard drops a run that will never be answered
func (s *ProgressService) Discard(ctx context.Context, id string) error {
	_, err := s.cache.Delete(ctx, id)
	return err
}

// resolve validates the option and returns its label and the next step id ("" = done)
func (s *ProgressService) resolve(strategy, stepID, optionID string) (string, string, error) {
	if strategy == engine.StrategyScored {
		q, ok := s.cat.ScoredQuestion(stepID)
		if !ok {
			return "", "", notFound("step_not_found", fmt.Errorf("%w: %s", ErrStepNotFound, stepID))
		}
		opt, ok := q.Option(optionID)
		if !ok {
			return "", "", invalid("option_not_found", fmt.Errorf("%w: %s", ErrOptionNotFound, optionID))
		}
		next, ok := s.cat.NextScoredQuestion(stepID)
		if !ok {
			return opt.Label, "", nil
		}
		return opt.Label, next.ID, nil
	}

	step, ok := s.cat.Step(stepID)
	if !ok {
		return "", "", notFound("step_not_found", fmt.Errorf("%w: %s", ErrStepNotFound, stepID))
	}
	opt, ok := step.Option(optionID)
	if !ok {
		return "", "", invalid("option_not_found", fmt.Errorf("%w: %s", ErrOptionNotFound, optionID))
	}
	return opt.Label, opt.NextStepID, nil
}

func (s *ProgressService) load(ctx context.Context, id string) (*model.Progress, error) {
	p, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("progress_not_found", ErrProgressNotFound)
	}
	return p, nil
}

func (s *ProgressService) view(p *model.Progress) *ProgressView {
	v := &ProgressView{Progress: p}
	if p.Strategy == engine.StrategyScored {
		if q, ok := s.cat.ScoredQuestion(p.CurrentStepID); ok {
			v.Question = &q
		}
		v.Position = s.cat.ScoredProgress(p.CurrentStepID)
		return v
	}
	if step, ok := s.cat.Step(p.CurrentStepID); ok {
		v.Step = &step
	}
	v.Position = s.cat.StepProgress(p.CurrentStepID)
	return v
}
