package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskflow/taskflow-be/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleServiceError maps a service error to an HTTP response.
// notFoundMsg names the resource in the 404 body; datastore and other
// unexpected failures log server-side and return a generic message.
func handleServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	if msg, ok := apperr.IsValidation(err); ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, apperr.ErrConflict):
		writeError(w, http.StatusConflict, "Resource already exists")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
