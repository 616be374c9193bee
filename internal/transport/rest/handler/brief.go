package handler

import (
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

// BriefHandler handles client briefs
type BriefHandler struct {
	briefSvc *service.BriefService
	log      *logger.Logger
}

// NewBriefHandler creates a new brief handler
func NewBriefHandler(briefSvc *service.BriefService, log *logger.Logger) *BriefHandler {
	return &BriefHandler{briefSvc: briefSvc, log: log}
}

type createBriefRequest struct {
	ClientName string         `json:"clientName"`
	Answers    []model.Answer `json:"answers"`
}

// Create handles POST /v1/briefs
func (h *BriefHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBriefRequest
	if !decode(h.log, w, r, &req) {
		return
	}

	brief, err := h.briefSvc.Create(r.Context(), req.ClientName, req.Answers)
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, brief)
}

// List handles GET /v1/briefs
func (h *BriefHandler) List(w http.ResponseWriter, r *http.Request) {
	briefs, err := h.briefSvc.List(r.Context(), queryInt(r, "limit"))
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"briefs": briefs})
}

// Delete handles DELETE /v1/briefs/{id}
func (h *BriefHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.briefSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
