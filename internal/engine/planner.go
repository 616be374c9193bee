package engine

import (
	"errors"
	"time"

	"mediaplanner/internal/catalog"
	"mediaplanner/internal/model"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

const (
	firstStepID    = "STEP_1"
	terminalStepID = "STEP_9"
)

// Planner dispatches answers to a named strategy
type Planner struct {
	strategies map[string]Strategy
	now        func() time.Time
}

// NewPlanner registers the rules and scored strategies over one catalog
func NewPlanner(cat *catalog.Catalog) *Planner {
	return NewPlannerWith(NewRuleMatcher(cat), NewScoredBucket(cat))
}

func NewPlannerWith(strategies ...Strategy) *Planner {
	p := &Planner{strategies: make(map[string]Strategy, len(strategies)), now: time.Now}
	for _, s := range strategies {
		p.strategies[s.Name()] = s
	}
	return p
}

// Recommend runs the named strategy; an empty name selects rules
func (p *Planner) Recommend(strategy string, answers []model.Answer) (model.Recommendation, error) {
	if strategy == "" {
		strategy = StrategyRules
	}
	s, ok := p.strategies[strategy]
	if !ok {
		return model.Recommendation{}, ErrUnknownStrategy
	}
	out := s.Evaluate(answers)
	return model.Recommendation{
		Strategy:       strategy,
		Allocations:    out.Allocations,
		Reasoning:      out.Reasoning,
		Summary:        out.Summary,
		RuleName:       out.RuleName,
		Classification: out.Classification,
		GeneratedAt:    p.now().UTC(),
	}, nil
}

// HasStrategy reports whether name is registered
func (p *Planner) HasStrategy(name string) bool {
	if name == "" {
		return true
	}
	_, ok := p.strategies[name]
	return ok
}

// IsFlowComplete reports whether a branching answer set covers the first and last step
func IsFlowComplete(answers []model.Answer) bool {
	first, last := false, false
	for _, a := range answers {
		switch a.StepID {
		case firstStepID:
			first = true
		case terminalStepID:
			last = true
		}
	}
	return first && last
}
