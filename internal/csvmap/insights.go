package csvmap

import (
	"fmt"
	"slices"
	"strings"

	"mediaplanner/internal/model"
)

func insights(p Platform, plan *model.PlanSummary, missing []string) []string {
	var out []string
	name := capitalize(string(p))

	if planned(p, plan) {
		out = append(out, fmt.Sprintf("✅ **%s** ตรงกับแผนที่คุณวางไว้ (Hero/Support Channel)", name))
	} else {
		out = append(out, fmt.Sprintf("⚠️ **%s** ไม่ได้อยู่ในแผนหลักที่แนะนำ (อาจจะเป็น Test Channel)", name))
	}

	if slices.Contains(missing, "conversions") || slices.Contains(missing, "spend") {
		out = append(out, "⚠️ **Missing Critical Data**: ไม่พบข้อมูล Cost หรือ Conversion ซึ่งจำเป็นสำหรับการวัดผล ROI")
	} else {
		out = append(out, "📊 **Data Readiness**: ข้อมูลสำคัญครบถ้วน พร้อมสำหรับการวิเคราะห์ ROAS")
	}

	if p == PlatformFacebook && plan != nil && strings.Contains(strings.ToLower(plan.Summary), "volume") {
		out = append(out, `💡 **Optimization Tip**: สำหรับ KPI Volume ให้โฟกัสที่ "Link Clicks" และ "Results"`)
	}
	return out
}

func planned(p Platform, plan *model.PlanSummary) bool {
	if plan == nil {
		return false
	}
	for _, a := range plan.Allocations {
		if strings.Contains(strings.ToLower(string(a.Channel)), string(p)) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
