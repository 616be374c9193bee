package handler

import (
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

// ProgressHandler drives the questionnaire one answer at a time
type ProgressHandler struct {
	progressSvc *service.ProgressService
	log         *logger.Logger
}

func NewProgressHandler(progressSvc *service.ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc, log: log}
}

type startRequest struct {
	Strategy   string `json:"strategy"`
	ClientName string `json:"clientName"`
}

type answerRequest struct {
	StepID           string `json:"stepId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// Start handles POST /v1/planner/progress
func (h *ProgressHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if r.ContentLength != 0 && !decode(h.log, w, r, &req) {
		return
	}

	view, err := h.progressSvc.Start(r.Context(), req.Strategy, req.ClientName)
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /v1/planner/progress/{id}
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.progressSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Answer handles POST /v1/planner/progress/{id}/answers
func (h *ProgressHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decode(h.log, w, r, &req) {
		return
	}

	out, err := h.progressSvc.Answer(r.Context(), mux.Vars(r)["id"], req.StepID, req.SelectedOptionID)
	if err != nil {
		fail(h.log, w, r, err)
		return
	}

	if out.Result != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"completed":      true,
			"recommendation": out.Result.Recommendation,
			"sessionId":      out.Result.SessionID,
		})
		return
	}
	writeJSON(w, http.StatusOK, out.Next)
}
