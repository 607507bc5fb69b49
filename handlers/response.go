package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vivekpradhan736/task-tracker-backend/logging"
	"github.com/vivekpradhan736/task-tracker-backend/models"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its HTTP status and sends a {message}
// body. Unrecognized errors are store-level failures: the detail goes to the
// log, never to the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.Logger.Errorf("Internal error: %v", err)
		message = "internal server error"
	}
	writeJSON(w, status, map[string]string{"message": message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrProjectLimit):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
