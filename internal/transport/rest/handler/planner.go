package handler

import (
	"mediaplanner/internal/catalog"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

// PlannerHandler serves the questionnaire and recommendations
type PlannerHandler struct {
	plannerSvc *service.PlannerService
	cat        *catalog.Catalog
	log        *logger.Logger
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(plannerSvc *service.PlannerService, cat *catalog.Catalog, log *logger.Logger) *PlannerHandler {
	return &PlannerHandler{plannerSvc: plannerSvc, cat: cat, log: log}
}

// GetStep handles GET /v1/planner?stepId= and GET /v1/planner/steps/{stepId}
func (h *PlannerHandler) GetStep(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["stepId"]
	if id == "" {
		id = r.URL.Query().Get("stepId")
	}

	step, progress, err := h.plannerSvc.GetStep(id)
	if err != nil {
		fail(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"step":     step,
		"progress": progress,
	})
}

// Recommend handles POST /v1/planner
func (h *PlannerHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req service.RecommendRequest
	if !decode(h.log, w, r, &req) {
		return
	}

	res, err := h.plannerSvc.Recommend(r.Context(), req)
	if err != nil {
		fail(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"recommendation": res.Recommendation,
		"sessionId":      res.SessionID,
	})
}

// GetSession handles GET /v1/planner/sessions/{id}
func (h *PlannerHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.plannerSvc.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ListSessions handles GET /v1/admin/sessions
func (h *PlannerHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.plannerSvc.ListSessions(r.Context(), queryInt(r, "limit"))
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// Stats handles GET /v1/admin/stats?strategy=&limit=
func (h *PlannerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	entries, err := h.plannerSvc.Stats(r.Context(), strategy, queryInt(r, "limit"))
	if err != nil {
		fail(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stats": entries})
}

// ReferenceData handles GET /v1/reference-data
func (h *PlannerHandler) ReferenceData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": h.cat.ScoredQuestions(),
		"models":    h.cat.Buckets(),
	})
}
