package csvmap

import (
	"math"
	"strings"
	"unicode/utf8"

	"mediaplanner/internal/model"
)

// Map aligns CSV headers with the target schema and attaches plan insights.
// It is a pure function of its inputs.
func Map(p Platform, headers []string, plan *model.PlanSummary) model.CsvMappingResult {
	res := model.CsvMappingResult{
		Platform:      string(p),
		Mapping:       map[string]string{},
		Confidence:    map[string]float64{},
		MissingFields: []string{},
	}
	for _, field := range TargetFields {
		header, score, ok := bestMatch(headers, keywordsFor(field, p))
		if !ok {
			res.MissingFields = append(res.MissingFields, field)
			continue
		}
		res.Mapping[field] = header
		res.Confidence[field] = math.Round(score*100) / 100
	}
	res.Insights = insights(p, plan, res.MissingFields)
	return res
}

// bestMatch scores every header against the keywords. An exact match wins
// outright; a substring match scores 0.8 plus a bonus for keyword coverage,
// measured in characters so non-ASCII headers are not penalized.
func bestMatch(headers, keywords []string) (string, float64, bool) {
	best, bestScore := "", 0.0
	for _, header := range headers {
		h := strings.ReplaceAll(strings.ToLower(header), "_", " ")
		for _, kw := range keywords {
			if h == kw {
				return header, 1.0, true
			}
			if strings.Contains(h, kw) {
				score := 0.8 + float64(utf8.RuneCountInString(kw))/float64(utf8.RuneCountInString(h))*0.1
				if score > bestScore {
					best, bestScore = header, score
				}
			}
		}
	}
	return best, bestScore, best != ""
}
