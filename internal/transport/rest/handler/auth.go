package handler

import (
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
	log     *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, log: log}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decode(h.log, w, r, &req) {
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		logFailure(h.log, r, http.StatusUnauthorized, err)
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
