package engine

import "mediaplanner/internal/model"

// Strategy names
const (
	StrategyRules  = "rules"
	StrategyScored = "scored"
)

// Outcome is what a strategy computes for one answer set
type Outcome struct {
	Allocations    []model.ChannelAllocation
	Reasoning      []model.Reasoning
	Summary        string
	RuleName       string
	Classification *model.Classification
}

// Strategy turns answers into an allocation. Evaluate never fails:
// missing or unknown answers are skipped.
type Strategy interface {
	Name() string
	Evaluate(answers []model.Answer) Outcome
}
