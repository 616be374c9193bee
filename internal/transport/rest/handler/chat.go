package handler

import (
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"
)

// ChatHandler handles the planning assistant
type ChatHandler struct {
	chatSvc *service.ChatService
	log     *logger.Logger
}

func NewChatHandler(chatSvc *service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, log: log}
}

type chatRequest struct {
	Question string `json:"question"`
}

// Ask handles POST /v1/chat
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(h.log, w, r, &req) {
		return
	}

	resp, err := h.chatSvc.Ask(r.Context(), req.Question)
	if err != nil {
		status, code, msg := classify(err)
		logFailure(h.log, r, status, err)
		if status < http.StatusInternalServerError {
			writeError(w, status, code, msg)
			return
		}
		// the client still renders a chat bubble
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":    "Internal server error",
			"code":     codeInternal,
			"answer":   service.ChatApology,
			"category": model.CategoryGeneral,
		})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
