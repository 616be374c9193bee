package engine

import (
	"fmt"
	"sort"
	"strings"

	"mediaplanner/internal/allocation"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/model"
)

// fallbackRule applies when the catalog has no matching allocation rule
var fallbackRule = model.Rule{
	Name:     "Default Fallback → Balanced Mix",
	Priority: 0,
	Allocations: []model.ChannelAllocation{
		{Channel: model.ChannelFacebook, Percentage: 50, Role: model.RoleHero},
		{Channel: model.ChannelGoogle, Percentage: 30, Role: model.RoleSupport},
		{Channel: model.ChannelTikTok, Percentage: 20, Role: model.RoleTest},
	},
	Explanation: "Default recommendation: Facebook Hero (50%) + Google Support (30%) + TikTok Test (20%)",
}

// narrativeOrder lists decision points in step order with their narrative trigger
var narrativeOrder = []struct {
	trigger string
	field   string
}{
	{"objective", FieldObjective},
	{"audience", FieldAudience},
	{"price_range", FieldPriceRange},
	{"budget", FieldBudget},
	{"kpi_focus", FieldKPIFocus},
	{"duration", FieldDuration},
	{"historical_data", FieldHasData},
	{"client_preference", FieldClientInsist},
	{"tracking", FieldTracking},
}

// Match is the result of rule evaluation before adjustment
type Match struct {
	Rule        model.Rule
	Fallback    bool
	Constraints []model.Rule
}

// MaxChannels is the tightest channel cap among matched constraints
func (m Match) MaxChannels() int {
	limit := 0
	for _, r := range m.Constraints {
		if r.Constraint == nil || r.Constraint.Kind != model.ConstraintMaxChannels || r.Constraint.Value <= 0 {
			continue
		}
		if limit == 0 || r.Constraint.Value < limit {
			limit = r.Constraint.Value
		}
	}
	return limit
}

// RuleMatcher picks a base allocation from the priority rule table and
// runs it through the adjuster.
type RuleMatcher struct {
	cat *catalog.Catalog
}

func NewRuleMatcher(cat *catalog.Catalog) *RuleMatcher {
	return &RuleMatcher{cat: cat}
}

func (m *RuleMatcher) Name() string { return StrategyRules }

// Match finds the highest priority allocation rule whose conditions hold.
// Equal priorities keep table order.
func (m *RuleMatcher) Match(d Decisions) Match {
	var matched []model.Rule
	for _, r := range m.cat.Rules() {
		if d.Satisfies(r.Conditions) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Priority > matched[j].Priority })

	var res Match
	found := false
	for _, r := range matched {
		if r.HasAllocation() {
			if !found {
				res.Rule = r
				found = true
			}
			continue
		}
		if r.Constraint != nil {
			res.Constraints = append(res.Constraints, r)
		}
	}
	if !found {
		res.Rule = fallbackRule
		res.Rule.Allocations = append([]model.ChannelAllocation(nil), fallbackRule.Allocations...)
		res.Fallback = true
	}
	return res
}

func (m *RuleMatcher) Evaluate(answers []model.Answer) Outcome {
	d := Extract(answers, m.cat)
	match := m.Match(d)

	adjusted := allocation.Adjust(match.Rule.Allocations, allocation.Params{
		Budget:      d.Budget(),
		KPIFocus:    d.KPIFocus(),
		Duration:    d.Duration(),
		Tracking:    d.Tracking(),
		MaxChannels: match.MaxChannels(),
	})

	reasoning := []model.Reasoning{{Trigger: "rule", Message: match.Rule.Explanation}}
	for _, r := range match.Constraints {
		reasoning = append(reasoning, model.Reasoning{Trigger: "constraint", Message: r.Explanation})
	}
	for _, n := range narrativeOrder {
		val, ok := d[n.field]
		if !ok {
			continue
		}
		if msg, ok := m.cat.Narrative(n.trigger, val); ok {
			reasoning = append(reasoning, model.Reasoning{Trigger: n.trigger, Message: msg})
		}
	}
	reasoning = append(reasoning, adjusted.Reasoning...)

	return Outcome{
		Allocations: adjusted.Allocations,
		Reasoning:   reasoning,
		Summary:     m.summary(d, adjusted.Allocations),
		RuleName:    match.Rule.Name,
	}
}

type summaryData struct {
	Objective  string
	PriceRange string
	Hero       model.ChannelAllocation
	Support    *model.ChannelAllocation
}

func (m *RuleMatcher) summary(d Decisions, allocs []model.ChannelAllocation) string {
	data := summaryData{Objective: d.Objective(), PriceRange: d.PriceRange()}
	if hero, ok := model.WithRole(allocs, model.RoleHero); ok {
		data.Hero = hero
	}
	if support, ok := model.WithRole(allocs, model.RoleSupport); ok {
		data.Support = &support
	}

	var b strings.Builder
	if err := m.cat.SummaryTemplate().Execute(&b, data); err != nil {
		return fmt.Sprintf("%s เป็น Hero Channel (%d%%)", data.Hero.Channel, data.Hero.Percentage)
	}
	return b.String()
}
