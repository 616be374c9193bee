package engine

import (
	"fmt"
	"math"
	"strings"

	"mediaplanner/internal/allocation"
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/model"
)

// Efficiency thresholds for the blocked tiers
const (
	moderateCeiling = 40
	strongCeiling   = 70
)

// ScoredBucket classifies the ten-question questionnaire into a fixed bucket
type ScoredBucket struct {
	cat *catalog.Catalog
}

func NewScoredBucket(cat *catalog.Catalog) *ScoredBucket {
	return &ScoredBucket{cat: cat}
}

func (s *ScoredBucket) Name() string { return StrategyScored }

// Score is the raw tally of a scored answer set
type Score struct {
	Facebook int
	Google   int
	Blockers []string // question ids
	Force    string   // bucket id, last one wins
	Feedback []model.Reasoning
}

// Tally sums points, blockers and overrides. Unknown questions or options are skipped.
func (s *ScoredBucket) Tally(answers []model.Answer) Score {
	var sc Score
	for _, a := range answers {
		q, ok := s.cat.ScoredQuestion(a.StepID)
		if !ok {
			continue
		}
		opt, ok := q.Option(a.SelectedOptionID)
		if !ok {
			continue
		}
		if opt.Points != nil {
			sc.Facebook += opt.Points.Facebook
			sc.Google += opt.Points.Google
		}
		if opt.Blocker {
			sc.Blockers = append(sc.Blockers, q.ID)
		}
		if opt.ForceBucket != "" {
			sc.Force = opt.ForceBucket
		}
		if q.Feedback != "" {
			sc.Feedback = append(sc.Feedback, model.Reasoning{Trigger: "feedback:" + q.ID, Message: q.Feedback})
		}
	}
	return sc
}

// Efficiency is the hero's share of the maximum reachable score, rounded half up
func Efficiency(heroPoints, maxPoints int) int {
	if maxPoints <= 0 {
		return 0
	}
	return int(math.Round(float64(heroPoints) / float64(maxPoints) * 100))
}

// Tier maps an efficiency to a strength tier. Without a blocker the tier is always open.
func Tier(efficiency int, blocked bool) string {
	switch {
	case !blocked:
		return model.TierOpen
	case efficiency <= moderateCeiling:
		return model.TierModerate
	case efficiency <= strongCeiling:
		return model.TierStrong
	default:
		return model.TierMax
	}
}

func (s *ScoredBucket) Evaluate(answers []model.Answer) Outcome {
	sc := s.Tally(answers)

	hero, heroPts := model.ChannelFacebook, sc.Facebook
	if sc.Google > sc.Facebook {
		hero, heroPts = model.ChannelGoogle, sc.Google
	}
	blocked := len(sc.Blockers) > 0
	eff := Efficiency(heroPts, s.cat.MaxPoints())
	tier := Tier(eff, blocked)

	reasoning := []model.Reasoning{{
		Trigger: "score",
		Message: fmt.Sprintf("Facebook %d คะแนน / Google %d คะแนน → %s เป็น Hero (efficiency %d%%)", sc.Facebook, sc.Google, hero, eff),
	}}
	if blocked {
		reasoning = append(reasoning, model.Reasoning{
			Trigger: "blocker",
			Message: fmt.Sprintf("พบข้อจำกัดสำหรับ TikTok (%s) → ไม่เปิด Test channel, ระดับ %s", strings.Join(sc.Blockers, ", "), tier),
		})
	}

	bucket, _ := s.cat.SelectBucket(hero, tier)
	overridden := false
	if sc.Force != "" {
		if forced, ok := s.cat.Bucket(sc.Force); ok {
			bucket, overridden = forced, true
			reasoning = append(reasoning, model.Reasoning{
				Trigger: "override",
				Message: fmt.Sprintf("มี Winner Channel จากข้อมูลย้อนหลัง → ใช้โมเดล %s (%s)", bucket.ID, bucket.Name),
			})
		}
	}
	reasoning = append(reasoning, sc.Feedback...)

	return Outcome{
		Allocations: BucketAllocations(bucket),
		Reasoning:   reasoning,
		Summary:     bucket.Script,
		Classification: &model.Classification{
			BucketID:        bucket.ID,
			BucketName:      bucket.Name,
			Hero:            hero,
			FacebookPoints:  sc.Facebook,
			GooglePoints:    sc.Google,
			Blocked:         blocked,
			Efficiency:      eff,
			Tier:            tier,
			Overridden:      overridden,
			Insights:        bucket.Insights,
			Recommendations: bucket.Recommendations,
			Script:          bucket.Script,
		},
	}
}

// BucketAllocations turns a bucket's triple into ranked allocations, omitting zero shares
func BucketAllocations(b model.Bucket) []model.ChannelAllocation {
	var allocs []model.ChannelAllocation
	for _, a := range []model.ChannelAllocation{
		{Channel: model.ChannelFacebook, Percentage: b.Facebook},
		{Channel: model.ChannelGoogle, Percentage: b.Google},
		{Channel: model.ChannelTikTok, Percentage: b.TikTok},
	} {
		if a.Percentage > 0 {
			allocs = append(allocs, a)
		}
	}
	return allocation.Normalize(allocs)
}
