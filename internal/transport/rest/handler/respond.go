package handler

import (
	"encoding/json"
	"mediaplanner/internal/platform/apierr"
	"mediaplanner/internal/platform/logger"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// codeInternal is sent for failures that carry no apierr code
const codeInternal = "internal_error"

// writeError writes the human message under "error" and the machine-readable
// code under "code"
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": message, "code": code})
}

// classify returns the status, code and client-facing message for err.
// Anything that is not an apierr.Error is an internal failure.
func classify(err error) (int, string, string) {
	if e, ok := apierr.As(err); ok {
		code := e.Code
		if code == "" {
			code = codeInternal
		}
		return e.Status, code, e.Error()
	}
	return http.StatusInternalServerError, codeInternal, "internal server error"
}

// logFailure records err before the response is written
func logFailure(log *logger.Logger, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
		return
	}
	log.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
}

// fail logs err and writes the standard error body
func fail(log *logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := classify(err)
	logFailure(log, r, status, err)
	writeError(w, status, code, msg)
}

// decode reads a JSON body into dst; on failure it logs and answers 400
func decode(log *logger.Logger, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logFailure(log, r, http.StatusBadRequest, err)
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return false
	}
	return true
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
