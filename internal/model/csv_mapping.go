package model

// CsvMappingResult describes how uploaded CSV columns line up with the target schema
type CsvMappingResult struct {
	Platform      string             `json:"platform"`
	Mapping       map[string]string  `json:"mapping"`    // target field -> source header
	Confidence    map[string]float64 `json:"confidence"` // target field -> score in [0,1]
	MissingFields []string           `json:"missing_fields"`
	Insights      []string           `json:"insight"`
}

// PlanSummary is the optional plan context sent along with a CSV upload
type PlanSummary struct {
	Allocations []ChannelAllocation `json:"allocations,omitempty"`
	Summary     string              `json:"summary,omitempty"`
}
