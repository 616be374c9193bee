package model

import "time"

// Answer pairs a step (or scored question) with the selected option
type Answer struct {
	StepID           string    `json:"stepId" bson:"stepId"`
	SelectedOptionID string    `json:"selectedOptionId" bson:"selectedOptionId"`
	SelectedLabel    string    `json:"selectedLabel" bson:"selectedLabel"`
	Timestamp        time.Time `json:"timestamp" bson:"timestamp"`
}
