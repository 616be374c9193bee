package service

import (
	"context"
	"errors"
	"mediaplanner/internal/chat"
	"mediaplanner/internal/platform/apierr"
	"mediaplanner/internal/platform/logger"
	"net/http"
	"strings"
)

// AIService exposes raw text generation and summarization
type AIService struct {
	text      TextGenerator
	summarize TextGenerator
	kb        *chat.Knowledge
	log       *logger.Logger
}

// NewAIService creates a new AI passthrough service
func NewAIService(text, summarize TextGenerator, kb *chat.Knowledge, log *logger.Logger) *AIService {
	return &AIService{text: text, summarize: summarize, kb: kb, log: log}
}

// Generate runs a prompt as-is
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", badRequest("missing_prompt", "Prompt is required")
	}
	return s.call(ctx, s.text, prompt)
}

// Summarize condenses text for a junior planner
func (s *AIService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", badRequest("missing_text", "Text is required")
	}
	return s.call(ctx, s.summarize, s.kb.SummaryPrompt(text))
}

func (s *AIService) call(ctx context.Context, gen TextGenerator, prompt string) (string, error) {
	if gen == nil {
		return "", apierr.New(http.StatusInternalServerError, "provider_not_configured", errors.New("Missing GEMINI_API_KEY"))
	}
	out, err := gen.GenerateText(ctx, prompt)
	if errors.Is(err, ErrProviderNotConfigured) {
		return "", apierr.New(http.StatusInternalServerError, "provider_not_configured", errors.New("Missing GEMINI_API_KEY"))
	}
	if err != nil {
		s.log.Error("gemini call failed", "error", err)
		return "", apierr.New(http.StatusInternalServerError, "provider_error", err)
	}
	return out, nil
}
