package catalog

import (
	"embed"
	"errors"
	"fmt"
	"maps"
	"math"
	"text/template"

	"mediaplanner/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// dataFiles are decoded in order into one Document
var dataFiles = []string{
	"data/steps.yaml",
	"data/rules.yaml",
	"data/narratives.yaml",
	"data/scored.yaml",
}

var ErrInvalidCatalog = errors.New("invalid catalog")

// Document is the serialized form of the catalog, shared by the YAML files
// and the MongoDB catalog collection.
type Document struct {
	TotalSteps      int                          `yaml:"totalSteps" bson:"totalSteps" json:"totalSteps"`
	Steps           []model.Step                 `yaml:"steps" bson:"steps" json:"steps"`
	DecisionFields  []model.DecisionField        `yaml:"decisionFields" bson:"decisionFields" json:"decisionFields"`
	Rules           []model.Rule                 `yaml:"rules" bson:"rules" json:"rules"`
	Narratives      map[string]map[string]string `yaml:"narratives" bson:"narratives" json:"narratives"`
	SummaryTemplate string                       `yaml:"summaryTemplate" bson:"summaryTemplate" json:"summaryTemplate"`
	ScoredQuestions []model.ScoredQuestion       `yaml:"scoredQuestions" bson:"scoredQuestions" json:"scoredQuestions"`
	Buckets         []model.Bucket               `yaml:"buckets" bson:"buckets" json:"buckets"`
	Selection       map[string]map[string]string `yaml:"selection" bson:"selection" json:"selection"`
}

// Catalog is the read-only question, rule and bucket table.
// It has no mutators; every accessor hands out copies.
type Catalog struct {
	doc       Document
	steps     map[string]int
	fields    map[string]model.DecisionField
	questions map[string]int
	buckets   map[string]int
	summary   *template.Template
	maxPoints int
}

// EmbeddedDocument decodes the YAML compiled into the binary
func EmbeddedDocument() (Document, error) {
	var doc Document
	for _, name := range dataFiles {
		raw, err := dataFS.ReadFile(name)
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", name, err)
		}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return Document{}, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return doc, nil
}

// Load builds the catalog from the embedded data
func Load() (*Catalog, error) {
	doc, err := EmbeddedDocument()
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// MustLoad is Load for callers that cannot proceed without a catalog
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// FromDocument validates doc and indexes it
func FromDocument(doc Document) (*Catalog, error) {
	c := &Catalog{
		doc:       doc,
		steps:     make(map[string]int, len(doc.Steps)),
		fields:    make(map[string]model.DecisionField, len(doc.DecisionFields)),
		questions: make(map[string]int, len(doc.ScoredQuestions)),
		buckets:   make(map[string]int, len(doc.Buckets)),
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidCatalog)
	}
	if doc.TotalSteps <= 0 {
		return nil, fmt.Errorf("%w: totalSteps must be positive", ErrInvalidCatalog)
	}

	for i, s := range doc.Steps {
		if _, dup := c.steps[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate step %s", ErrInvalidCatalog, s.ID)
		}
		c.steps[s.ID] = i
	}
	for _, s := range doc.Steps {
		seen := map[string]bool{}
		for _, o := range s.Options {
			if seen[o.ID] {
				return nil, fmt.Errorf("%w: duplicate option %s in %s", ErrInvalidCatalog, o.ID, s.ID)
			}
			seen[o.ID] = true
			if o.NextStepID == "" {
				continue
			}
			if _, ok := c.steps[o.NextStepID]; !ok {
				return nil, fmt.Errorf("%w: %s/%s points at unknown step %s", ErrInvalidCatalog, s.ID, o.ID, o.NextStepID)
			}
		}
	}

	for _, f := range doc.DecisionFields {
		if _, ok := c.steps[f.StepID]; !ok {
			return nil, fmt.Errorf("%w: decision field for unknown step %s", ErrInvalidCatalog, f.StepID)
		}
		c.fields[f.StepID] = f
	}

	for _, r := range doc.Rules {
		if !r.HasAllocation() {
			if r.Constraint == nil {
				return nil, fmt.Errorf("%w: rule %q has neither allocation nor constraint", ErrInvalidCatalog, r.Name)
			}
			continue
		}
		sum := 0
		for _, a := range r.Allocations {
			sum += a.Percentage
		}
		if sum != 100 {
			return nil, fmt.Errorf("%w: rule %q sums to %d", ErrInvalidCatalog, r.Name, sum)
		}
	}

	for i, q := range doc.ScoredQuestions {
		if _, dup := c.questions[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question %s", ErrInvalidCatalog, q.ID)
		}
		c.questions[q.ID] = i
	}
	for i, b := range doc.Buckets {
		if _, dup := c.buckets[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate bucket %s", ErrInvalidCatalog, b.ID)
		}
		if b.Facebook+b.Google+b.TikTok != 100 {
			return nil, fmt.Errorf("%w: bucket %s sums to %d", ErrInvalidCatalog, b.ID, b.Facebook+b.Google+b.TikTok)
		}
		c.buckets[b.ID] = i
	}
	for _, q := range doc.ScoredQuestions {
		for _, o := range q.Options {
			if o.ForceBucket == "" {
				continue
			}
			if _, ok := c.buckets[o.ForceBucket]; !ok {
				return nil, fmt.Errorf("%w: %s/%s forces unknown bucket %s", ErrInvalidCatalog, q.ID, o.Value, o.ForceBucket)
			}
		}
	}
	if len(doc.ScoredQuestions) > 0 {
		for _, hero := range []model.Channel{model.ChannelFacebook, model.ChannelGoogle} {
			for _, tier := range []string{model.TierOpen, model.TierModerate, model.TierStrong, model.TierMax} {
				id := doc.Selection[string(hero)][tier]
				if _, ok := c.buckets[id]; !ok {
					return nil, fmt.Errorf("%w: no bucket selected for %s/%s", ErrInvalidCatalog, hero, tier)
				}
			}
		}
	}

	tmpl, err := template.New("summary").Parse(doc.SummaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: summary template: %v", ErrInvalidCatalog, err)
	}
	c.summary = tmpl
	c.maxPoints = computeMaxPoints(doc.ScoredQuestions)
	return c, nil
}

// computeMaxPoints sums each channel's best option per question and keeps the larger total
func computeMaxPoints(questions []model.ScoredQuestion) int {
	fb, gg := 0, 0
	for _, q := range questions {
		bestFB, bestGG := 0, 0
		for _, o := range q.Options {
			if o.Points == nil {
				continue
			}
			bestFB = max(bestFB, o.Points.Facebook)
			bestGG = max(bestGG, o.Points.Google)
		}
		fb += bestFB
		gg += bestGG
	}
	return max(fb, gg)
}

// Document returns a deep copy of the source document, e.g. for seeding
func (c *Catalog) Document() Document {
	doc := c.doc
	doc.Steps = c.Steps()
	doc.DecisionFields = append([]model.DecisionField(nil), c.doc.DecisionFields...)
	doc.Rules = c.allRules()
	doc.Narratives = copyNested(c.doc.Narratives)
	doc.ScoredQuestions = c.ScoredQuestions()
	doc.Buckets = c.Buckets()
	doc.Selection = copyNested(c.doc.Selection)
	return doc
}

// ---------- steps ----------

func (c *Catalog) Step(id string) (model.Step, bool) {
	i, ok := c.steps[id]
	if !ok {
		return model.Step{}, false
	}
	return copyStep(c.doc.Steps[i]), true
}

// FirstStep is the entry point of the flow
func (c *Catalog) FirstStep() model.Step {
	return copyStep(c.doc.Steps[0])
}

func (c *Catalog) Steps() []model.Step {
	out := make([]model.Step, len(c.doc.Steps))
	for i, s := range c.doc.Steps {
		out[i] = copyStep(s)
	}
	return out
}

// NextStep follows an option's link. ok is false for a terminal option
// or an unknown step/option pair.
func (c *Catalog) NextStep(stepID, optionID string) (model.Step, bool) {
	i, ok := c.steps[stepID]
	if !ok {
		return model.Step{}, false
	}
	opt, ok := c.doc.Steps[i].Option(optionID)
	if !ok || opt.NextStepID == "" {
		return model.Step{}, false
	}
	return c.Step(opt.NextStepID)
}

// StepProgress reports floor(stepNumber) out of the user-facing total; unknown ids are 0
func (c *Catalog) StepProgress(stepID string) model.StepProgress {
	p := model.StepProgress{Total: c.doc.TotalSteps}
	if i, ok := c.steps[stepID]; ok {
		p.Current = int(math.Floor(c.doc.Steps[i].StepNumber))
	}
	return p
}

func (c *Catalog) TotalSteps() int { return c.doc.TotalSteps }

func (c *Catalog) DecisionField(stepID string) (model.DecisionField, bool) {
	f, ok := c.fields[stepID]
	return f, ok
}

// ---------- rules & narrative ----------

// Rules returns the active rules in table order
func (c *Catalog) Rules() []model.Rule {
	out := make([]model.Rule, 0, len(c.doc.Rules))
	for _, r := range c.allRules() {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) allRules() []model.Rule {
	out := make([]model.Rule, len(c.doc.Rules))
	for i, r := range c.doc.Rules {
		out[i] = copyRule(r)
	}
	return out
}

// Narrative looks up the reasoning message for a decision value
func (c *Catalog) Narrative(trigger, value string) (string, bool) {
	msg, ok := c.doc.Narratives[trigger][value]
	return msg, ok
}

// SummaryTemplate returns the parsed summary template
func (c *Catalog) SummaryTemplate() *template.Template {
	return c.summary
}

// ---------- scored questionnaire ----------

func (c *Catalog) ScoredQuestions() []model.ScoredQuestion {
	out := make([]model.ScoredQuestion, len(c.doc.ScoredQuestions))
	for i, q := range c.doc.ScoredQuestions {
		out[i] = copyQuestion(q)
	}
	return out
}

func (c *Catalog) ScoredQuestion(id string) (model.ScoredQuestion, bool) {
	i, ok := c.questions[id]
	if !ok {
		return model.ScoredQuestion{}, false
	}
	return copyQuestion(c.doc.ScoredQuestions[i]), true
}

// NextScoredQuestion returns the question after id in catalog order
func (c *Catalog) NextScoredQuestion(id string) (model.ScoredQuestion, bool) {
	i, ok := c.questions[id]
	if !ok || i+1 >= len(c.doc.ScoredQuestions) {
		return model.ScoredQuestion{}, false
	}
	return copyQuestion(c.doc.ScoredQuestions[i+1]), true
}

// ScoredProgress is the 1-based position of a scored question
func (c *Catalog) ScoredProgress(id string) model.StepProgress {
	p := model.StepProgress{Total: len(c.doc.ScoredQuestions)}
	if i, ok := c.questions[id]; ok {
		p.Current = i + 1
	}
	return p
}

func (c *Catalog) Bucket(id string) (model.Bucket, bool) {
	i, ok := c.buckets[id]
	if !ok {
		return model.Bucket{}, false
	}
	return copyBucket(c.doc.Buckets[i]), true
}

func (c *Catalog) Buckets() []model.Bucket {
	out := make([]model.Bucket, len(c.doc.Buckets))
	for i, b := range c.doc.Buckets {
		out[i] = copyBucket(b)
	}
	return out
}

// SelectBucket maps a hero channel and strength tier to its bucket
func (c *Catalog) SelectBucket(hero model.Channel, tier string) (model.Bucket, bool) {
	id, ok := c.doc.Selection[string(hero)][tier]
	if !ok {
		return model.Bucket{}, false
	}
	return c.Bucket(id)
}

// MaxPoints is the highest score any single channel can reach
func (c *Catalog) MaxPoints() int { return c.maxPoints }

// ---------- copies ----------

func copyStep(s model.Step) model.Step {
	opts := make([]model.Option, len(s.Options))
	for i, o := range s.Options {
		o.Metadata = maps.Clone(o.Metadata)
		opts[i] = o
	}
	s.Options = opts
	return s
}

func copyRule(r model.Rule) model.Rule {
	r.Conditions = maps.Clone(r.Conditions)
	r.Allocations = append([]model.ChannelAllocation(nil), r.Allocations...)
	if r.Constraint != nil {
		cons := *r.Constraint
		r.Constraint = &cons
	}
	if r.Active != nil {
		active := *r.Active
		r.Active = &active
	}
	return r
}

func copyQuestion(q model.ScoredQuestion) model.ScoredQuestion {
	opts := make([]model.ScoredOption, len(q.Options))
	for i, o := range q.Options {
		if o.Points != nil {
			pts := *o.Points
			o.Points = &pts
		}
		opts[i] = o
	}
	q.Options = opts
	return q
}

func copyBucket(b model.Bucket) model.Bucket {
	b.Recommendations = append([]string(nil), b.Recommendations...)
	return b
}

func copyNested(m map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(m))
	for k, inner := range m {
		out[k] = maps.Clone(inner)
	}
	return out
}
