package handler

import (
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"
)

// CsvHandler maps uploaded ad-platform exports
type CsvHandler struct {
	csvSvc *service.CsvService
	log    *logger.Logger
}

func NewCsvHandler(csvSvc *service.CsvService, log *logger.Logger) *CsvHandler {
	return &CsvHandler{csvSvc: csvSvc, log: log}
}

// Map handles POST /v1/map-csv
func (h *CsvHandler) Map(w http.ResponseWriter, r *http.Request) {
	var req service.MapCSVRequest
	if !decode(h.log, w, r, &req) {
		return
	}

	res, err := h.csvSvc.MapCSV(r.Context(), req)
	if err != nil {
		status, code, msg := classify(err)
		logFailure(h.log, r, status, err)
		writeJSON(w, status, map[string]interface{}{"success": false, "error": msg, "code": code})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": res})
}
