package csvmap

// Platform is an ad platform whose export can be mapped
type Platform string

const (
	PlatformFacebook Platform = "facebook"
	PlatformGoogle   Platform = "google"
	PlatformTikTok   Platform = "tiktok"
)

// ParsePlatform accepts only the lowercase platform names
func ParsePlatform(s string) (Platform, bool) {
	switch p := Platform(s); p {
	case PlatformFacebook, PlatformGoogle, PlatformTikTok:
		return p, true
	}
	return "", false
}

// TargetFields is the standard schema in mapping order
var TargetFields = []string{
	"campaign_name",
	"objective",
	"budget",
	"impressions",
	"clicks",
	"conversions",
	"spend",
	"start_date",
	"end_date",
}

var commonKeywords = map[string][]string{
	"campaign_name": {"campaign name", "campaign"},
	"budget":        {"budget", "daily budget", "amount"},
	"start_date":    {"start", "start date", "starts"},
	"end_date":      {"end", "end date", "ends"},
}

var platformKeywords = map[Platform]map[string][]string{
	PlatformFacebook: {
		"objective":   {"objective", "campaign objective"},
		"impressions": {"impressions"},
		"clicks":      {"link clicks", "clicks (all)", "clicks"},
		"conversions": {"results", "website purchases", "leads"},
		"spend":       {"amount spent", "cost", "spend"},
	},
	PlatformGoogle: {
		"objective":   {"campaign type", "opt score"},
		"impressions": {"impr.", "impressions"},
		"clicks":      {"clicks"},
		"conversions": {"conversions", "conv."},
		"spend":       {"cost", "total cost"},
	},
	PlatformTikTok: {
		"objective":   {"objective_type"},
		"impressions": {"impressions"},
		"clicks":      {"clicks"},
		"conversions": {"conversions", "conversion"},
		"spend":       {"cost", "total_cost"},
	},
}

// keywordsFor lists platform keywords first, then the shared synonyms
func keywordsFor(field string, p Platform) []string {
	out := append([]string(nil), platformKeywords[p][field]...)
	return append(out, commonKeywords[field]...)
}
