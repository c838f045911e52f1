package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/swachhdev/waste-collect/internal/validation"
)

// writeJSON replies with a JSON body. Encoding failures are logged; headers
// are already sent by then so the client sees a truncated body.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// writeError replies with a single user-displayable message. Backend
// failures are terminal for the operation: no retries, prior state untouched.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationErrors replies with the per-field error map. Validation
// problems are non-fatal field-level feedback, never a server error.
func writeValidationErrors(w http.ResponseWriter, result validation.Result) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": result.Errors,
	})
}
