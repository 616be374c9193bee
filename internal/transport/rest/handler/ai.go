package handler

import (
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"
)

// AIHandler exposes raw generation and summarization
type AIHandler struct {
	aiSvc *service.AIService
	log   *logger.Logger
}

func NewAIHandler(aiSvc *service.AIService, log *logger.Logger) *AIHandler {
	return &AIHandler{aiSvc: aiSvc, log: log}
}

// Generate handles POST /v1/gemini
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !decode(h.log, w, r, &req) {
		return
	}

	text, err := h.aiSvc.Generate(r.Context(), req.Prompt)
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// Summarize handles POST /v1/summarize
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decode(h.log, w, r, &req) {
		return
	}

	text, err := h.aiSvc.Summarize(r.Context(), req.Text)
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}
