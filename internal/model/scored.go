package model

// ScoredQuestion is one question of the point-accumulation questionnaire
type ScoredQuestion struct {
	ID       string         `json:"id" bson:"id" yaml:"id"`
	Topic    string         `json:"topic" bson:"topic" yaml:"topic"`
	Desc     string         `json:"desc" bson:"desc" yaml:"desc"`
	Hint     string         `json:"hint" bson:"hint" yaml:"hint"`
	Feedback string         `json:"feedback,omitempty" bson:"feedback,omitempty" yaml:"feedback"`
	Options  []ScoredOption `json:"options" bson:"options" yaml:"options"`
}

// ScoredOption carries the points and blocking flags of an answer
type ScoredOption struct {
	Value       string       `json:"val" bson:"val" yaml:"val"`
	Label       string       `json:"label" bson:"label" yaml:"label"`
	Sub         string       `json:"sub,omitempty" bson:"sub,omitempty" yaml:"sub"`
	Points      *PointWeight `json:"points,omitempty" bson:"points,omitempty" yaml:"points"`
	Blocker     bool         `json:"blocker,omitempty" bson:"blocker,omitempty" yaml:"blocker"`
	ForceBucket string       `json:"forceBucket,omitempty" bson:"forceBucket,omitempty" yaml:"forceBucket"`
}

// PointWeight is the per-channel score of an option
type PointWeight struct {
	Facebook int `json:"fb" bson:"fb" yaml:"fb"`
	Google   int `json:"gg" bson:"gg" yaml:"gg"`
}

// Option looks up an option by value
func (q ScoredQuestion) Option(val string) (ScoredOption, bool) {
	for _, o := range q.Options {
		if o.Value == val {
			return o, true
		}
	}
	return ScoredOption{}, false
}

// Bucket is a fixed classification with its own budget split and narrative
type Bucket struct {
	ID              string   `json:"id" bson:"id" yaml:"id"`
	Name            string   `json:"name" bson:"name" yaml:"name"`
	Facebook        int      `json:"fb" bson:"fb" yaml:"fb"`
	Google          int      `json:"gg" bson:"gg" yaml:"gg"`
	TikTok          int      `json:"tt" bson:"tt" yaml:"tt"`
	Insights        string   `json:"insights" bson:"insights" yaml:"insights"`
	Recommendations []string `json:"recs" bson:"recs" yaml:"recs"`
	Script          string   `json:"script" bson:"script" yaml:"script"`
}

// Strength tiers of the scored classification
const (
	TierOpen     = "open" // no blocker fired
	TierModerate = "moderate"
	TierStrong   = "strong"
	TierMax      = "max"
)
