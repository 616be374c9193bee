package service

import (
	"errors"
	"mediaplanner/internal/platform/apierr"
	"net/http"
)

var (
	ErrStepNotFound     = errors.New("Step not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrProgressNotFound = errors.New("progress not found")
	ErrProgressClaimed  = errors.New("progress is already being completed")
	ErrStepMismatch     = errors.New("answer is not for the current step")
	ErrOptionNotFound   = errors.New("option not found")
	ErrBriefNotFound    = errors.New("brief not found")
)

func badRequest(code, msg string) error {
	return apierr.New(http.StatusBadRequest, code, errors.New(msg))
}

func invalid(code string, err error) error {
	return apierr.New(http.StatusBadRequest, code, err)
}

func notFound(code string, err error) error {
	return apierr.New(http.StatusNotFound, code, err)
}

// clampLimit bounds list sizes for admin listings
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 20
	case limit > 100:
		return 100
	default:
		return limit
	}
}
