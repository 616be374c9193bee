package allocation

import (
	"sort"

	"mediaplanner/internal/model"
)

// LargestRemainder scales weights so they sum to exactly total.
// Floors are handed out first; leftover units go to the largest fractional
// parts, earlier index first on ties. A zero sum splits total evenly.
func LargestRemainder(weights []int, total int) []int {
	n := len(weights)
	out := make([]int, n)
	if n == 0 {
		return out
	}

	sum := 0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		for i := range out {
			out[i] = total / n
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}

	type rem struct {
		idx  int
		frac int // numerator over sum
	}
	rems := make([]rem, n)
	given := 0
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		scaled := w * total
		out[i] = scaled / sum
		given += out[i]
		rems[i] = rem{idx: i, frac: scaled % sum}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; i < total-given; i++ {
		out[rems[i%n].idx]++
	}
	return out
}

// entry is an allocation under adjustment
type entry struct {
	channel   model.Channel
	pct       int
	role      model.Role
	preferred bool
}

func toEntries(allocs []model.ChannelAllocation) []entry {
	out := make([]entry, len(allocs))
	for i, a := range allocs {
		out[i] = entry{channel: a.Channel, pct: a.Percentage, role: a.Role}
	}
	return out
}

// rescale rewrites percentages in place so they total 100
func rescale(entries []entry) {
	weights := make([]int, len(entries))
	for i, e := range entries {
		weights[i] = e.pct
	}
	for i, pct := range LargestRemainder(weights, 100) {
		entries[i].pct = pct
	}
}

// finalize rescales, orders by share and assigns roles by rank
func finalize(entries []entry) []model.ChannelAllocation {
	rescale(entries)
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].pct != entries[b].pct {
			return entries[a].pct > entries[b].pct
		}
		return entries[a].preferred && !entries[b].preferred
	})

	out := make([]model.ChannelAllocation, len(entries))
	for i, e := range entries {
		role := model.RoleTest
		switch i {
		case 0:
			role = model.RoleHero
		case 1:
			role = model.RoleSupport
		}
		out[i] = model.ChannelAllocation{Channel: e.channel, Percentage: e.pct, Role: role}
	}
	return out
}

// Normalize makes allocs sum to exactly 100, sorted descending with
// exactly one Hero, one Support and the rest Test.
func Normalize(allocs []model.ChannelAllocation) []model.ChannelAllocation {
	return finalize(toEntries(allocs))
}
