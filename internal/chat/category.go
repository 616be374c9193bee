package chat

import (
	"strings"

	"mediaplanner/internal/model"
)

// categoryKeywords is checked in order; the first hit wins
var categoryKeywords = []struct {
	category model.ChatCategory
	keywords []string
}{
	{model.CategoryMediaPlanning, []string{"media", "channel", "budget", "reach", "frequency"}},
	{model.CategoryCampaignStrategy, []string{"campaign", "กลยุทธ์", "แคมเปญ", "strategy", "creative"}},
	{model.CategoryKPIFunnel, []string{"kpi", "funnel", "metric", "conversion", "วัดผล"}},
	{model.CategoryPerformance, []string{"performance", "optimization", "roas", "cpa", "a/b test"}},
}

// Detect classifies a question by keyword
func Detect(question string) model.ChatCategory {
	q := strings.ToLower(question)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				return c.category
			}
		}
	}
	return model.CategoryGeneral
}
