// Package handler provides the HTTP surface for the Chronicle API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/service"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps sentinel errors from the service and domain layers
// onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrImageNotFound):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrEditWindowClosed),
		errors.Is(err, domain.ErrEntryNotLocked),
		errors.Is(err, service.ErrEntryBusy):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrUndecryptable),
		errors.Is(err, domain.ErrCoverLimitExceeded),
		errors.Is(err, domain.ErrCoverIndexOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, domain.ErrUsernameTooLong),
		errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())

	default:
		logger.Error().Err(err).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
