package config

import (
	"mediaplanner/internal/platform/envutil"
	"os"
)

// GeminiModels defines which Gemini model serves each kind of request
type GeminiModels struct {
	// Chat answers planner questions
	Chat string `json:"chat"`

	// Text is the raw prompt passthrough
	Text string `json:"text"`

	// Summary condenses user supplied text
	Summary string `json:"summary"`

	// Advice writes the senior-planner narrative for a brief
	Advice string `json:"advice"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the AI configuration read from the environment
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Models: GeminiModels{
			Chat:    getEnvOrDefault("GEMINI_MODEL_CHAT", "gemini-2.0-flash"),
			Text:    getEnvOrDefault("GEMINI_MODEL_TEXT", "gemini-1.5-flash"),
			Summary: getEnvOrDefault("GEMINI_MODEL_SUMMARY", "gemini-2.0-flash"),
			Advice:  getEnvOrDefault("GEMINI_MODEL_ADVICE", "gemini-2.5-flash"),
		},
		TimeoutMS: envutil.Int("GEMINI_TIMEOUT_MS", 30000),
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
