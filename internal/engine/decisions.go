package engine

import (
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/model"
)

// Decision variable names
const (
	FieldObjective    = "objective"
	FieldAudience     = "audience"
	FieldPriceRange   = "priceRange"
	FieldKPI          = "kpi"
	FieldBudget       = "budget"
	FieldKPIFocus     = "kpiFocus"
	FieldDuration     = "duration"
	FieldHasData      = "hasData"
	FieldClientInsist = "clientInsist"
	FieldTracking     = "tracking"
)

// Decisions are the normalized variables derived from answers.
// A missing key means the step was not answered.
type Decisions map[string]string

// Extract folds answers into decision variables using the catalog's field
// table. Unknown steps are skipped and a later answer for the same step wins.
func Extract(answers []model.Answer, cat *catalog.Catalog) Decisions {
	d := Decisions{}
	for _, a := range answers {
		f, ok := cat.DecisionField(a.StepID)
		if !ok {
			continue
		}
		val := a.SelectedOptionID
		if mapped, ok := f.Values[val]; ok {
			val = mapped
		}
		d[f.Field] = val
	}
	return d
}

func (d Decisions) Objective() string   { return d[FieldObjective] }
func (d Decisions) Audience() string    { return d[FieldAudience] }
func (d Decisions) PriceRange() string  { return d[FieldPriceRange] }
func (d Decisions) KPI() string         { return d[FieldKPI] }
func (d Decisions) Budget() string      { return d[FieldBudget] }
func (d Decisions) KPIFocus() string    { return d[FieldKPIFocus] }
func (d Decisions) Duration() string    { return d[FieldDuration] }
func (d Decisions) Tracking() string    { return d[FieldTracking] }
func (d Decisions) HasData() bool       { return d[FieldHasData] == "true" }
func (d Decisions) ClientInsists() bool { return d[FieldClientInsist] == "true" }

// Satisfies reports whether every condition is present with an equal value
func (d Decisions) Satisfies(conditions map[string]string) bool {
	for k, v := range conditions {
		if got, ok := d[k]; !ok || got != v {
			return false
		}
	}
	return true
}
