package model

import "time"

// Brief is a saved client pitch built from the scored questionnaire
type Brief struct {
	ID         string              `json:"id" bson:"_id"`
	ClientName string              `json:"clientName" bson:"clientName"`
	BucketID   string              `json:"modelId" bson:"modelId"`
	BucketName string              `json:"modelName" bson:"modelName"`
	Allocation []ChannelAllocation `json:"allocation" bson:"allocation"`
	Efficiency int                 `json:"efficiency" bson:"efficiency"`
	Advice     string              `json:"aiAdvice" bson:"aiAdvice"`
	AdviceByAI bool                `json:"adviceByAi" bson:"adviceByAi"`
	Answers    []Answer            `json:"answers" bson:"answers"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
}
