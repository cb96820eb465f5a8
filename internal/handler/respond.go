package handler

import (
	"encoding/json"
	"net/http"

	"lejog-map/pkg/errors"
	"lejog-map/pkg/logger"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError writes an error response in the standard envelope. Non-AppError
// values are wrapped as internal errors.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError("Internal server error", err)
	}

	log.WithError(appErr).Error("Request error")

	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"type":    string(appErr.Type),
			"message": appErr.Message,
		},
	}
	if appErr.Details != nil {
		response["error"].(map[string]interface{})["details"] = appErr.Details
	}

	writeJSON(w, log, appErr.StatusCode, response)
}
