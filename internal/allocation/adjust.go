package allocation

import (
	"fmt"
	"sort"
	"strings"

	"mediaplanner/internal/model"
)

// Reasoning triggers emitted by Adjust
const (
	TriggerBudget   = "adjust.budget"
	TriggerKPIFocus = "adjust.kpi_focus"
	TriggerDuration = "adjust.duration"
	TriggerTracking = "adjust.tracking"
)

const defaultLowBudgetChannels = 2

// Params are the decision values the adjuster reacts to
type Params struct {
	Budget      string // low | high
	KPIFocus    string // prefer_volume | prefer_quality
	Duration    string // burst | always_on
	Tracking    string // good | weak
	MaxChannels int    // from a matched constraint rule; 0 = none
}

// Result is the adjusted allocation plus what changed it
type Result struct {
	Allocations []model.ChannelAllocation
	Reasoning   []model.Reasoning
}

// Adjust applies budget, KPI focus, duration and tracking modifiers to a base
// allocation, then renormalizes to 100 and re-derives roles. Channels that are
// not in base are never added.
func Adjust(base []model.ChannelAllocation, p Params) Result {
	entries := toEntries(base)
	var res Result
	note := func(trigger, msg string) {
		res.Reasoning = append(res.Reasoning, model.Reasoning{Trigger: trigger, Message: msg})
	}

	if limit := channelLimit(p); limit > 0 && len(entries) > limit {
		var dropped []string
		entries, dropped = limitChannels(entries, limit)
		rescale(entries)
		note(TriggerBudget, fmt.Sprintf("จำกัดงบเหลือ %d ช่องทาง: ตัด %s ออกและกระจายงบใหม่", limit, strings.Join(dropped, ", ")))
	}

	switch p.KPIFocus {
	case "prefer_volume":
		bump(entries, model.ChannelFacebook, 5)
		bump(entries, model.ChannelTikTok, 5)
		shrink(entries, model.ChannelGoogle, 10, 5)
		note(TriggerKPIFocus, "KPI Volume: Facebook +5%, TikTok +5%, Google -10% (ขั้นต่ำ 5%)")
	case "prefer_quality":
		bump(entries, model.ChannelGoogle, 10)
		shrink(entries, model.ChannelFacebook, 10, 10)
		note(TriggerKPIFocus, "KPI Quality: Google +10%, Facebook -10% (ขั้นต่ำ 10%)")
	}

	switch p.Duration {
	case "burst":
		bump(entries, model.ChannelFacebook, 3)
		bump(entries, model.ChannelTikTok, 3)
		shrink(entries, model.ChannelGoogle, 6, 5)
		note(TriggerDuration, "Burst: Facebook +3%, TikTok +3%, Google -6% (ขั้นต่ำ 5%)")
	case "always_on":
		bump(entries, model.ChannelGoogle, 5)
		prefer(entries, model.ChannelGoogle)
		note(TriggerDuration, "Always-on: Google +5% และเป็นตัวเลือกแรกของ Hero Channel")
	}

	if p.Tracking == "weak" {
		bump(entries, model.ChannelFacebook, 5)
		prefer(entries, model.ChannelFacebook)
		note(TriggerTracking, "Tracking อ่อน: Facebook +5% และเป็นตัวเลือกแรกของ Hero Channel")
	}

	res.Allocations = finalize(entries)
	return res
}

func channelLimit(p Params) int {
	if p.MaxChannels > 0 {
		return p.MaxChannels
	}
	if p.Budget == "low" {
		return defaultLowBudgetChannels
	}
	return 0
}

// limitChannels drops Test entries when that alone meets the limit,
// otherwise keeps the top entries by share. Relative order is preserved.
func limitChannels(entries []entry, limit int) ([]entry, []string) {
	nonTest := 0
	for _, e := range entries {
		if e.role != model.RoleTest {
			nonTest++
		}
	}

	keep := make([]bool, len(entries))
	if nonTest == limit {
		for i, e := range entries {
			keep[i] = e.role != model.RoleTest
		}
	} else {
		idx := make([]int, len(entries))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return entries[idx[a]].pct > entries[idx[b]].pct })
		for _, i := range idx[:limit] {
			keep[i] = true
		}
	}

	var kept []entry
	var dropped []string
	for i, e := range entries {
		if keep[i] {
			kept = append(kept, e)
		} else {
			dropped = append(dropped, string(e.channel))
		}
	}
	return kept, dropped
}

func bump(entries []entry, ch model.Channel, delta int) {
	for i := range entries {
		if entries[i].channel == ch {
			entries[i].pct += delta
		}
	}
}

// shrink lowers a channel by delta but not below floor; a share already under
// floor is left as is
func shrink(entries []entry, ch model.Channel, delta, floor int) {
	for i := range entries {
		if entries[i].channel == ch {
			entries[i].pct = max(min(floor, entries[i].pct), entries[i].pct-delta)
		}
	}
}

// prefer marks ch as the Hero tie-break; a later mark replaces an earlier one
func prefer(entries []entry, ch model.Channel) {
	present := false
	for _, e := range entries {
		present = present || e.channel == ch
	}
	if !present {
		return
	}
	for i := range entries {
		entries[i].preferred = entries[i].channel == ch
	}
}
