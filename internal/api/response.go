package api

import (
	"encoding/json"
	"net/http"

	"github.com/tipofmy/portal/internal/pkg/logger"
)

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("encode response", "err", err.Error())
		}
	}
}

// respondError writes the uniform failure shape. The error field carries
// a stable machine code, never internal details.
func respondError(w http.ResponseWriter, code int, errCode string) {
	respondJSON(w, code, map[string]interface{}{"ok": false, "error": errCode})
}

// respondSafeError logs the internal cause server-side and returns only
// the generic code to the client. Database details, file paths and
// driver messages never reach API consumers.
func respondSafeError(w http.ResponseWriter, code int, internalErr error, errCode string) {
	if internalErr != nil {
		logger.Error("request failed", "status", code, "code", errCode, "err", internalErr.Error())
	}
	respondError(w, code, errCode)
}
