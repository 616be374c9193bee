package model

import "time"

// Session is a stored recommendation together with the answers that produced it
type Session struct {
	ID             string          `json:"id" bson:"_id"`
	Strategy       string          `json:"strategy" bson:"strategy"`
	ClientName     string          `json:"clientName,omitempty" bson:"clientName,omitempty"`
	Answers        []Answer        `json:"answers" bson:"answers"`
	Recommendation *Recommendation `json:"recommendation" bson:"recommendation"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
}

// Progress tracks a step-by-step run that has not finished yet
type Progress struct {
	ID            string    `json:"id"`
	Strategy      string    `json:"strategy"`
	ClientName    string    `json:"clientName,omitempty"`
	CurrentStepID string    `json:"currentStepId"`
	Answers       []Answer  `json:"answers"`
	StartedAt     time.Time `json:"startedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
