package model

import "time"

// Recommendation is the computed budget plan for one answer set
type Recommendation struct {
	Strategy       string              `json:"strategy" bson:"strategy"`
	Allocations    []ChannelAllocation `json:"allocations" bson:"allocations"`
	Reasoning      []Reasoning         `json:"reasoning" bson:"reasoning"`
	Summary        string              `json:"summary" bson:"summary"`
	RuleName       string              `json:"ruleName,omitempty" bson:"ruleName,omitempty"`
	Classification *Classification     `json:"classification,omitempty" bson:"classification,omitempty"`
	GeneratedAt    time.Time           `json:"generatedAt" bson:"generatedAt"`
}

// Classification is the scored-bucket outcome
type Classification struct {
	BucketID        string   `json:"bucketId" bson:"bucketId"`
	BucketName      string   `json:"bucketName" bson:"bucketName"`
	Hero            Channel  `json:"hero" bson:"hero"`
	FacebookPoints  int      `json:"facebookPoints" bson:"facebookPoints"`
	GooglePoints    int      `json:"googlePoints" bson:"googlePoints"`
	Blocked         bool     `json:"blocked" bson:"blocked"`
	Efficiency      int      `json:"efficiency" bson:"efficiency"`
	Tier            string   `json:"tier" bson:"tier"`
	Overridden      bool     `json:"overridden,omitempty" bson:"overridden,omitempty"`
	Insights        string   `json:"insights" bson:"insights"`
	Recommendations []string `json:"recs" bson:"recs"`
	Script          string   `json:"script" bson:"script"`
}
