package model

// Rule maps a set of decision conditions to a base allocation or a constraint
type Rule struct {
	Name        string              `json:"name" bson:"name" yaml:"name"`
	Priority    int                 `json:"priority" bson:"priority" yaml:"priority"`
	Active      *bool               `json:"active,omitempty" bson:"active,omitempty" yaml:"active"`
	Conditions  map[string]string   `json:"conditions" bson:"conditions" yaml:"conditions"`
	Allocations []ChannelAllocation `json:"allocations,omitempty" bson:"allocations,omitempty" yaml:"allocations"`
	Constraint  *RuleConstraint     `json:"constraint,omitempty" bson:"constraint,omitempty" yaml:"constraint"`
	Explanation string              `json:"explanation" bson:"explanation" yaml:"explanation"`
}

// RuleConstraint is a side effect applied after the base allocation
type RuleConstraint struct {
	Kind  string `json:"kind" bson:"kind" yaml:"kind"` // "maxChannels"
	Value int    `json:"value" bson:"value" yaml:"value"`
	Note  string `json:"note,omitempty" bson:"note,omitempty" yaml:"note"`
}

const ConstraintMaxChannels = "maxChannels"

// IsActive defaults to true when the flag is absent
func (r Rule) IsActive() bool {
	return r.Active == nil || *r.Active
}

// HasAllocation reports whether the rule yields a base allocation
func (r Rule) HasAllocation() bool {
	return len(r.Allocations) > 0
}

// DecisionField maps answers of one step onto a named decision variable
type DecisionField struct {
	StepID string            `json:"stepId" bson:"stepId" yaml:"stepId"`
	Field  string            `json:"field" bson:"field" yaml:"field"`
	Values map[string]string `json:"values,omitempty" bson:"values,omitempty" yaml:"values"` // optionId -> value; absent = option id
}
