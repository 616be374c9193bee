package allocation

import (
	"testing"

	"mediaplanner/internal/model"
)

func alloc(ch model.Channel, pct int, role model.Role) model.ChannelAllocation {
	return model.ChannelAllocation{Channel: ch, Percentage: pct, Role: role}
}

func total(allocs []model.ChannelAllocation) int {
	n := 0
	for _, a := range allocs {
		n += a.Percentage
	}
	return n
}

func heroes(allocs []model.ChannelAllocation) int {
	n := 0
	for _, a := range allocs {
		if a.Role == model.RoleHero {
			n++
		}
	}
	return n
}

func triggers(rs []model.Reasoning) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Trigger
	}
	return out
}

func TestAdjustNoParamsKeepsBase(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelGoogle, 60, model.RoleHero),
		alloc(model.ChannelFacebook, 30, model.RoleSupport),
		alloc(model.ChannelTikTok, 10, model.RoleTest),
	}
	res := Adjust(base, Params{Budget: "high", Tracking: "good"})
	for i := range base {
		if res.Allocations[i] != base[i] {
			t.Fatalf("expected %+v, got %+v", base, res.Allocations)
		}
	}
	if len(res.Reasoning) != 0 {
		t.Fatalf("expected no adjustments, got %v", triggers(res.Reasoning))
	}
}

func TestAdjustVolumeAndBurst(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelFacebook, 55, model.RoleHero),
		alloc(model.ChannelTikTok, 25, model.RoleSupport),
		alloc(model.ChannelGoogle, 20, model.RoleTest),
	}
	res := Adjust(base, Params{Budget: "high", KPIFocus: "prefer_volume", Duration: "burst", Tracking: "good"})

	want := []model.ChannelAllocation{
		alloc(model.ChannelFacebook, 62, model.RoleHero),
		alloc(model.ChannelTikTok, 33, model.RoleSupport),
		alloc(model.ChannelGoogle, 5, model.RoleTest),
	}
	for i := range want {
		if res.Allocations[i] != want[i] {
			t.Fatalf("expected %+v, got %+v", want, res.Allocations)
		}
	}
	got := triggers(res.Reasoning)
	if len(got) != 2 || got[0] != TriggerKPIFocus || got[1] != TriggerDuration {
		t.Fatalf("expected kpi_focus then duration, got %v", got)
	}
}

func TestAdjustLowBudgetEvictsTest(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelFacebook, 45, model.RoleHero),
		alloc(model.ChannelTikTok, 35, model.RoleSupport),
		alloc(model.ChannelGoogle, 20, model.RoleTest),
	}
	res := Adjust(base, Params{Budget: "low", KPIFocus: "prefer_volume"})

	if len(res.Allocations) != 2 {
		t.Fatalf("expected 2 channels, got %+v", res.Allocations)
	}
	if _, ok := model.Find(res.Allocations, model.ChannelGoogle); ok {
		t.Fatal("expected Google to be evicted")
	}
	if res.Allocations[0].Channel != model.ChannelFacebook || res.Allocations[0].Percentage != 55 {
		t.Fatalf("expected Facebook 55 Hero, got %+v", res.Allocations[0])
	}
	if res.Allocations[1].Percentage != 45 {
		t.Fatalf("expected TikTok 45, got %+v", res.Allocations[1])
	}
	if got := triggers(res.Reasoning); got[0] != TriggerBudget {
		t.Fatalf("expected budget adjustment first, got %v", got)
	}
}

func TestAdjustMaxChannelsKeepsTopN(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelFacebook, 50, model.RoleHero),
		alloc(model.ChannelGoogle, 30, model.RoleTest),
		alloc(model.ChannelTikTok, 20, model.RoleTest),
	}
	res := Adjust(base, Params{MaxChannels: 2})
	if len(res.Allocations) != 2 {
		t.Fatalf("expected 2 channels, got %+v", res.Allocations)
	}
	if _, ok := model.Find(res.Allocations, model.ChannelTikTok); ok {
		t.Fatal("expected the smallest channel to be dropped")
	}
	if total(res.Allocations) != 100 {
		t.Fatalf("expected sum 100, got %d", total(res.Allocations))
	}
}

func TestAdjustWeakTrackingWinsHeroTie(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelGoogle, 45, model.RoleHero),
		alloc(model.ChannelFacebook, 40, model.RoleSupport),
		alloc(model.ChannelTikTok, 15, model.RoleTest),
	}
	res := Adjust(base, Params{Tracking: "weak"})
	if res.Allocations[0].Channel != model.ChannelFacebook || res.Allocations[0].Role != model.RoleHero {
		t.Fatalf("expected Facebook to take the tied Hero slot, got %+v", res.Allocations)
	}
}

func TestAdjustNeverAddsChannels(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelFacebook, 70, model.RoleHero),
		alloc(model.ChannelGoogle, 30, model.RoleSupport),
	}
	res := Adjust(base, Params{KPIFocus: "prefer_volume", Duration: "burst", Tracking: "weak"})
	if _, ok := model.Find(res.Allocations, model.ChannelTikTok); ok {
		t.Fatal("expected TikTok to stay absent")
	}
}

func TestAdjustInvariants(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelTikTok, 50, model.RoleHero),
		alloc(model.ChannelFacebook, 35, model.RoleSupport),
		alloc(model.ChannelGoogle, 15, model.RoleTest),
	}
	for _, budget := range []string{"low", "high"} {
		for _, focus := range []string{"", "prefer_volume", "prefer_quality"} {
			for _, dur := range []string{"", "burst", "always_on"} {
				for _, tr := range []string{"good", "weak"} {
					res := Adjust(base, Params{Budget: budget, KPIFocus: focus, Duration: dur, Tracking: tr})
					if total(res.Allocations) != 100 {
						t.Fatalf("%s/%s/%s/%s: expected sum 100, got %d", budget, focus, dur, tr, total(res.Allocations))
					}
					if heroes(res.Allocations) != 1 {
						t.Fatalf("%s/%s/%s/%s: expected one Hero, got %+v", budget, focus, dur, tr, res.Allocations)
					}
					for i := 1; i < len(res.Allocations); i++ {
						if res.Allocations[i].Percentage > res.Allocations[i-1].Percentage {
							t.Fatalf("expected descending order, got %+v", res.Allocations)
						}
					}
				}
			}
		}
	}
}

func TestAdjustQualityKeepsGoogleAndCapsFacebook(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelGoogle, 60, model.RoleHero),
		alloc(model.ChannelFacebook, 30, model.RoleSupport),
		alloc(model.ChannelTikTok, 10, model.RoleTest),
	}
	res := Adjust(base, Params{Budget: "high", KPIFocus: "prefer_quality", Tracking: "good"})
	g, _ := model.Find(res.Allocations, model.ChannelGoogle)
	f, _ := model.Find(res.Allocations, model.ChannelFacebook)
	if g.Percentage < 60 {
		t.Fatalf("expected Google >= 60, got %d", g.Percentage)
	}
	if f.Percentage > 30 {
		t.Fatalf("expected Facebook <= 30, got %d", f.Percentage)
	}
	if total(res.Allocations) != 100 {
		t.Fatalf("expected sum 100, got %d", total(res.Allocations))
	}
}

func TestAdjustShrinkNeverRaisesShareBelowFloor(t *testing.T) {
	base := []model.ChannelAllocation{
		alloc(model.ChannelGoogle, 60, model.RoleHero),
		alloc(model.ChannelTikTok, 35, model.RoleSupport),
		alloc(model.ChannelFacebook, 5, model.RoleTest),
	}
	res := Adjust(base, Params{Budget: "high", KPIFocus: "prefer_quality", Tracking: "good"})
	f, ok := model.Find(res.Allocations, model.ChannelFacebook)
	if !ok {
		t.Fatalf("expected Facebook to stay, got %+v", res.Allocations)
	}
	if f.Percentage > 5 {
		t.Fatalf("expected Facebook <= 5, got %d", f.Percentage)
	}
	g, _ := model.Find(res.Allocations, model.ChannelGoogle)
	if g.Percentage < 60 {
		t.Fatalf("expected Google >= 60, got %d", g.Percentage)
	}
}
