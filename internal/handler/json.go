package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error          string            `json:"error"`
	Details        map[string]string `json:"details,omitempty"`
	AlreadySkipped bool              `json:"alreadySkipped,omitempty"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
