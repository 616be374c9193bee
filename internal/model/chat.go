package model

// ChatCategory is the coarse topic of a planner question
type ChatCategory string

const (
	CategoryMediaPlanning    ChatCategory = "media-planning"
	CategoryCampaignStrategy ChatCategory = "campaign-strategy"
	CategoryKPIFunnel        ChatCategory = "kpi-funnel"
	CategoryPerformance      ChatCategory = "performance"
	CategoryGeneral          ChatCategory = "general"
)

// ChatResponse is returned by the chat endpoint
type ChatResponse struct {
	Answer           string       `json:"answer"`
	Category         ChatCategory `json:"category"`
	RetrievedContext []string     `json:"retrievedContext,omitempty"`
}
