package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/eventapi"
	"github.com/evebuzz/evebuzz/pkg/snapshot"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// WriteServiceError maps the error kinds of the events pipeline onto HTTP statuses.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eventapi.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, eventapi.ErrFetchFailed):
		WriteError(w, http.StatusBadGateway, "Failed to fetch events", err.Error())
	case errors.Is(err, event.ErrMalformedRecord):
		WriteError(w, http.StatusUnprocessableEntity, "Malformed event record", err.Error())
	case errors.Is(err, snapshot.ErrStaleRefresh):
		WriteError(w, http.StatusConflict, "Refresh superseded", err.Error())
	case errors.Is(err, event.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, snapshot.ErrNoSnapshot):
		WriteError(w, http.StatusServiceUnavailable, "Events not loaded", err.Error())
	default:
		log.Errorf("unexpected service error: %v", err)
		WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
