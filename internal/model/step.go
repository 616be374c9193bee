package model

// Step is one node of the branching planner questionnaire
type Step struct {
	ID         string   `json:"id" bson:"id" yaml:"id"`
	StepNumber float64  `json:"stepNumber" bson:"stepNumber" yaml:"stepNumber"` // 1.5 for sub-steps
	Question   string   `json:"question" bson:"question" yaml:"question"`
	Insight    string   `json:"insight" bson:"insight" yaml:"insight"`
	Category   string   `json:"category,omitempty" bson:"category,omitempty" yaml:"category"`
	Options    []Option `json:"options" bson:"options" yaml:"options"`
}

// Option is a selectable answer of a Step
type Option struct {
	ID          string            `json:"id" bson:"id" yaml:"id"`
	Label       string            `json:"label" bson:"label" yaml:"label"`
	Description string            `json:"description,omitempty" bson:"description,omitempty" yaml:"description"`
	NextStepID  string            `json:"nextStepId" bson:"nextStepId" yaml:"nextStepId"` // empty = terminal
	Metadata    map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty" yaml:"metadata"`
}

// Option looks up an option of the step by id
func (s Step) Option(id string) (Option, bool) {
	for _, o := range s.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// StepProgress is the position of a step within the flow
type StepProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}
